package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// NewBucketsCommand creates the buckets command group
func NewBucketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket"},
		Short:   "Manage buckets",
		Long:    "List, inspect, create and delete buckets",
	}

	cmd.AddCommand(newBucketsListCommand())
	cmd.AddCommand(newBucketsGetCommand())
	cmd.AddCommand(newBucketsCreateCommand())
	cmd.AddCommand(newBucketsDeleteCommand())

	return cmd
}

func newBucketsListCommand() *cobra.Command {
	var (
		filters  []string
		sortKeys []string
		limit    int
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			opts, err := listOptionsFromFlags(filters, sortKeys, limit)
			if err != nil {
				return err
			}

			var buckets []kinto.Bucket

			if allPages {
				buckets, err = client.Buckets().ListAll(ctx, opts)
			} else {
				var pager *kinto.Pager[kinto.Bucket]

				pager, err = client.Buckets().List(ctx, opts)
				if pager != nil {
					buckets = pager.Objects
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list buckets: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(buckets)
			case OutputFormatYAML:
				return renderYAML(buckets)
			default:
				return renderObjectTable(buckets,
					func(b kinto.Bucket) string { return b.ID },
					func(b kinto.Bucket) int64 { return b.LastModified })
			}
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "equality filter as field=value (repeatable)")
	cmd.Flags().StringSliceVar(&sortKeys, "sort", nil, "sort keys, prefix with - for descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newBucketsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET",
		Short: "Show one bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			bucket, err := client.Buckets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get bucket: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return renderYAML(bucket)
			default:
				return renderJSON(bucket)
			}
		},
	}
}

func newBucketsCreateCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create BUCKET",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			bucket, err := client.Buckets().Create(ctx, payload, nil)
			if err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}

			fmt.Printf("Created bucket %s\n", bucket.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "extra bucket data as JSON, or @file")

	return cmd
}

func newBucketsDeleteCommand() *cobra.Command {
	var ifMatch int64

	cmd := &cobra.Command{
		Use:   "delete BUCKET",
		Short: "Delete a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			err = client.Buckets().Delete(ctx, args[0], writeOptions(ifMatch))
			if err != nil {
				return fmt.Errorf("failed to delete bucket: %w", err)
			}

			fmt.Printf("Deleted bucket %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().Int64Var(&ifMatch, "if-match", 0, "only delete if last_modified matches")

	return cmd
}

// writeOptions maps the --if-match flag to write options, nil when unset.
func writeOptions(ifMatch int64) *kinto.WriteOptions {
	if ifMatch <= 0 {
		return nil
	}

	return &kinto.WriteOptions{IfMatch: ifMatch}
}
