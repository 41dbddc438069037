package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/spf13/cobra"
)

const recordLimit = 200

func main() {
	var streamName, shardID, region string

	rootCmd := &cobra.Command{
		Use:   "kinesis-consumer",
		Short: "Read records from one shard of a Kinesis data stream",
		Long: "Reads a single shard from the oldest available record and prints " +
			"each record's position and payload. Run it from the private instance " +
			"to verify that the stream is reachable through the interface endpoint.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return readShard(cmd.Context(), streamName, shardID, region)
		},
	}

	rootCmd.Flags().StringVar(&streamName, "stream-name", "", "name of the Kinesis data stream")
	rootCmd.Flags().StringVar(&shardID, "shard-id", "", "shard to read, e.g. shardId-000000000000")
	rootCmd.Flags().StringVar(&region, "region", "", "AWS region of the stream (defaults to the ambient region)")
	_ = rootCmd.MarkFlagRequired("stream-name")
	_ = rootCmd.MarkFlagRequired("shard-id")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// readShard fetches up to recordLimit records from the given shard,
// starting at TRIM_HORIZON, and prints them as a table
func readShard(ctx context.Context, streamName, shardID, region string) error {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}
	client := kinesis.NewFromConfig(cfg)

	itrResp, err := client.GetShardIterator(ctx, &kinesis.GetShardIteratorInput{
		StreamName:        aws.String(streamName),
		ShardId:           aws.String(shardID),
		ShardIteratorType: types.ShardIteratorTypeTrimHorizon,
	})
	if err != nil {
		return fmt.Errorf("getting shard iterator: %w", err)
	}

	recordsResp, err := client.GetRecords(ctx, &kinesis.GetRecordsInput{
		ShardIterator: itrResp.ShardIterator,
		Limit:         aws.Int32(recordLimit),
	})
	if err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	const rowFmt = "%-20s %-60s %s\n"
	fmt.Printf(rowFmt, "Shard", "Position", "Message")
	fmt.Printf(rowFmt, "--------------------", "------------------------------------------------------------", "----------------------------------------")
	for _, record := range recordsResp.Records {
		fmt.Printf(rowFmt, shardID, aws.ToString(record.SequenceNumber), string(record.Data))
	}

	return nil
}
