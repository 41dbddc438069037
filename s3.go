package main

import (
	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// StorageResources holds the S3 resources
type StorageResources struct {
	Bucket *s3.Bucket
}

// createStorageResources creates the demo bucket. The bucket name is
// provider-assigned and surfaced through the stack outputs; ForceDestroy
// lets a stack teardown remove the bucket even when objects were written
// during the exercise.
func createStorageResources(ctx *pulumi.Context) (*StorageResources, error) {
	bucket, err := s3.NewBucket(ctx, "endpoint-lab-bucket", &s3.BucketArgs{
		Acl:          pulumi.String("private"),
		ForceDestroy: pulumi.Bool(true),
		ServerSideEncryptionConfiguration: &s3.BucketServerSideEncryptionConfigurationArgs{
			Rule: &s3.BucketServerSideEncryptionConfigurationRuleArgs{
				ApplyServerSideEncryptionByDefault: &s3.BucketServerSideEncryptionConfigurationRuleApplyServerSideEncryptionByDefaultArgs{
					SseAlgorithm: pulumi.String("AES256"),
				},
			},
		},
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-bucket"),
		},
	})
	if err != nil {
		return nil, err
	}

	return &StorageResources{
		Bucket: bucket,
	}, nil
}
