package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// NewRecordsCommand creates the records command group
func NewRecordsCommand() *cobra.Command {
	var (
		bucket     string
		collection string
	)

	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record"},
		Short:   "Manage records",
		Long:    "List, inspect, create, update and delete records within a collection",
	}

	cmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", "", "parent bucket")
	cmd.PersistentFlags().StringVarP(&collection, "collection", "l", "", "parent collection")

	cmd.AddCommand(newRecordsListCommand(&bucket, &collection))
	cmd.AddCommand(newRecordsGetCommand(&bucket, &collection))
	cmd.AddCommand(newRecordsCreateCommand(&bucket, &collection))
	cmd.AddCommand(newRecordsUpdateCommand(&bucket, &collection))
	cmd.AddCommand(newRecordsReplaceCommand(&bucket, &collection))
	cmd.AddCommand(newRecordsDeleteCommand(&bucket, &collection))

	return cmd
}

func requireScope(bucket, collection *string) error {
	if *bucket == "" {
		return ErrBucketRequired
	}

	if *collection == "" {
		return ErrCollectionRequired
	}

	return nil
}

func newRecordsListCommand(bucket, collection *string) *cobra.Command {
	var (
		filters  []string
		sortKeys []string
		limit    int
		allPages bool
		since    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			opts, err := listOptionsFromFlags(filters, sortKeys, limit)
			if err != nil {
				return err
			}

			if since != "" {
				opts.Filters = append(opts.Filters, kinto.Since{Value: since})
			}

			var records []kinto.Record

			if allPages {
				records, err = client.Records(*bucket, *collection).ListAll(ctx, opts)
			} else {
				var pager *kinto.Pager[kinto.Record]

				pager, err = client.Records(*bucket, *collection).List(ctx, opts)
				if pager != nil {
					records = pager.Objects

					if pager.HasNextPage() && viper.GetString("output") == "table" {
						defer fmt.Printf("\nShowing %d of %d records, use --all for every page\n",
							len(records), pager.Total)
					}
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(records)
			case OutputFormatYAML:
				return renderYAML(records)
			default:
				return renderRecordTable(records)
			}
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "equality filter as field=value (repeatable)")
	cmd.Flags().StringSliceVar(&sortKeys, "sort", nil, "sort keys, prefix with - for descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().StringVar(&since, "since", "", "only records modified after this timestamp")

	return cmd
}

func newRecordsGetCommand(bucket, collection *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get RECORD",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			record, err := client.Records(*bucket, *collection).Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get record: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return renderYAML(record)
			default:
				return renderJSON(record)
			}
		},
	}
}

func newRecordsCreateCommand(bucket, collection *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create DATA",
		Short: "Create a record",
		Long:  "Create a record from inline JSON or @file; the server assigns the id unless the data carries one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			data, err := parseData(args[0])
			if err != nil {
				return err
			}

			record, err := client.Records(*bucket, *collection).Create(ctx, data, nil)
			if err != nil {
				return fmt.Errorf("failed to create record: %w", err)
			}

			fmt.Printf("Created record %s\n", record.ID())

			return nil
		},
	}
}

func newRecordsUpdateCommand(bucket, collection *string) *cobra.Command {
	var ifMatch int64

	cmd := &cobra.Command{
		Use:   "update RECORD DATA",
		Short: "Patch a record",
		Long:  "Merge the given JSON fields into an existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			data, err := parseData(args[1])
			if err != nil {
				return err
			}

			record, err := client.Records(*bucket, *collection).Update(ctx, args[0], data, writeOptions(ifMatch))
			if err != nil {
				return fmt.Errorf("failed to update record: %w", err)
			}

			fmt.Printf("Updated record %s (last_modified %d)\n", record.ID(), record.LastModified())

			return nil
		},
	}

	cmd.Flags().Int64Var(&ifMatch, "if-match", 0, "only update if last_modified matches")

	return cmd
}

func newRecordsReplaceCommand(bucket, collection *string) *cobra.Command {
	var (
		ifMatch      int64
		onlyIfAbsent bool
	)

	cmd := &cobra.Command{
		Use:   "replace RECORD DATA",
		Short: "Replace a record",
		Long:  "Put the full record content, creating it when absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			data, err := parseData(args[1])
			if err != nil {
				return err
			}

			opts := writeOptions(ifMatch)
			if onlyIfAbsent {
				opts = &kinto.WriteOptions{IfNoneMatchAny: true}
			}

			record, err := client.Records(*bucket, *collection).Replace(ctx, args[0], data, opts)
			if err != nil {
				return fmt.Errorf("failed to replace record: %w", err)
			}

			fmt.Printf("Replaced record %s (last_modified %d)\n", record.ID(), record.LastModified())

			return nil
		},
	}

	cmd.Flags().Int64Var(&ifMatch, "if-match", 0, "only replace if last_modified matches")
	cmd.Flags().BoolVar(&onlyIfAbsent, "if-absent", false, "only create, fail if the record exists")

	return cmd
}

func newRecordsDeleteCommand(bucket, collection *string) *cobra.Command {
	var ifMatch int64

	cmd := &cobra.Command{
		Use:   "delete RECORD",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScope(bucket, collection); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			err = client.Records(*bucket, *collection).Delete(ctx, args[0], writeOptions(ifMatch))
			if err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}

			fmt.Printf("Deleted record %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().Int64Var(&ifMatch, "if-match", 0, "only delete if last_modified matches")

	return cmd
}
