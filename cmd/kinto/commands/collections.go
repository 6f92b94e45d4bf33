package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// NewCollectionsCommand creates the collections command group
func NewCollectionsCommand() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "Manage collections",
		Long:    "List, inspect, create and delete collections within a bucket",
	}

	cmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", "", "parent bucket")

	cmd.AddCommand(newCollectionsListCommand(&bucket))
	cmd.AddCommand(newCollectionsGetCommand(&bucket))
	cmd.AddCommand(newCollectionsCreateCommand(&bucket))
	cmd.AddCommand(newCollectionsDeleteCommand(&bucket))

	return cmd
}

func requireBucket(bucket *string) error {
	if *bucket == "" {
		return ErrBucketRequired
	}

	return nil
}

func newCollectionsListCommand(bucket *string) *cobra.Command {
	var (
		filters  []string
		sortKeys []string
		limit    int
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBucket(bucket); err != nil {
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

			var collections []kinto.Collection

			if allPages {
				collections, err = client.Collections(*bucket).ListAll(ctx, opts)
			} else {
				var pager *kinto.Pager[kinto.Collection]

				pager, err = client.Collections(*bucket).List(ctx, opts)
				if pager != nil {
					collections = pager.Objects
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list collections: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(collections)
			case OutputFormatYAML:
				return renderYAML(collections)
			default:
				return renderObjectTable(collections,
					func(c kinto.Collection) string { return c.ID },
					func(c kinto.Collection) int64 { return c.LastModified })
			}
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "equality filter as field=value (repeatable)")
	cmd.Flags().StringSliceVar(&sortKeys, "sort", nil, "sort keys, prefix with - for descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newCollectionsGetCommand(bucket *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get COLLECTION",
		Short: "Show one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBucket(bucket); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			collection, err := client.Collections(*bucket).Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get collection: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return renderYAML(collection)
			default:
				return renderJSON(collection)
			}
		},
	}
}

func newCollectionsCreateCommand(bucket *string) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create COLLECTION",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBucket(bucket); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			payload := map[string]interface{}{"id": args[0]}

			if data != "" {
				parsed, err := parseData(data)
				if err != nil {
					return err
				}

				for key, value := range parsed {
					payload[key] = value
				}

				payload["id"] = args[0]
			}

			collection, err := client.Collections(*bucket).Create(ctx, payload, nil)
			if err != nil {
				return fmt.Errorf("failed to create collection: %w", err)
			}

			fmt.Printf("Created collection %s in bucket %s\n", collection.ID, *bucket)

			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "extra collection data as JSON, or @file")

	return cmd
}

func newCollectionsDeleteCommand(bucket *string) *cobra.Command {
	var ifMatch int64

	cmd := &cobra.Command{
		Use:   "delete COLLECTION",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBucket(bucket); err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			err = client.Collections(*bucket).Delete(ctx, args[0], writeOptions(ifMatch))
			if err != nil {
				return fmt.Errorf("failed to delete collection: %w", err)
			}

			fmt.Printf("Deleted collection %s from bucket %s\n", args[0], *bucket)

			return nil
		},
	}

	cmd.Flags().Int64Var(&ifMatch, "if-match", 0, "only delete if last_modified matches")

	return cmd
}
