package main

import (
	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/kinesis"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// StreamResources holds the Kinesis resources
type StreamResources struct {
	Stream *kinesis.Stream
}

// createStreamResources creates the demo data stream. One shard and the
// minimum retention are enough for the shard-iterator consumer.
func createStreamResources(ctx *pulumi.Context) (*StreamResources, error) {
	stream, err := kinesis.NewStream(ctx, "endpoint-lab-stream", &kinesis.StreamArgs{
		ShardCount:      pulumi.Int(1),
		RetentionPeriod: pulumi.Int(24),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-stream"),
		},
	})
	if err != nil {
		return nil, err
	}

	return &StreamResources{
		Stream: stream,
	}, nil
}
