package main

import (
	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/iam"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// IamResources holds the IAM resources shared by both instances
type IamResources struct {
	InstanceRole    *iam.Role
	InstanceProfile *iam.InstanceProfile
}

// createIamResources creates the instance role and its two inline
// policies. Both policies are scoped to the ARNs of the bucket and the
// stream created in this same run; there is no wildcard resource anywhere.
func createIamResources(ctx *pulumi.Context, storage *StorageResources, streams *StreamResources) (*IamResources, error) {
	// Create instance role, assumable by EC2 only
	instanceRole, err := iam.NewRole(ctx, "ec2-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(`{
			"Version": "2012-10-17",
			"Statement": [{
				"Action": "sts:AssumeRole",
				"Principal": {
					"Service": "ec2.amazonaws.com"
				},
				"Effect": "Allow",
				"Sid": ""
			}]
		}`),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-ec2-role"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Inline policy for bucket access: the bucket itself for ListBucket,
	// the object wildcard for the object-level actions
	_, err = iam.NewRolePolicy(ctx, "bucket-access-policy", &iam.RolePolicyArgs{
		Role: instanceRole.ID(),
		Policy: storage.Bucket.Arn.ApplyT(func(bucketArn string) string {
			return `{
				"Version": "2012-10-17",
				"Statement": [{
					"Action": [
						"s3:ListBucket",
						"s3:PutObject",
						"s3:GetObject",
						"s3:DeleteObject"
					],
					"Effect": "Allow",
					"Resource": [
						"` + bucketArn + `",
						"` + bucketArn + `/*"
					]
				}]
			}`
		}).(pulumi.StringOutput),
	})
	if err != nil {
		return nil, err
	}

	// Inline policy for stream access: broad at the action level,
	// narrow at the resource level
	_, err = iam.NewRolePolicy(ctx, "stream-access-policy", &iam.RolePolicyArgs{
		Role: instanceRole.ID(),
		Policy: streams.Stream.Arn.ApplyT(func(streamArn string) string {
			return `{
				"Version": "2012-10-17",
				"Statement": [{
					"Action": [
						"kinesis:*"
					],
					"Effect": "Allow",
					"Resource": "` + streamArn + `"
				}]
			}`
		}).(pulumi.StringOutput),
	})
	if err != nil {
		return nil, err
	}

	// Create instance profile shared by both instances
	instanceProfile, err := iam.NewInstanceProfile(ctx, "ec2-instance-profile", &iam.InstanceProfileArgs{
		Role: instanceRole.Name,
	})
	if err != nil {
		return nil, err
	}

	return &IamResources{
		InstanceRole:    instanceRole,
		InstanceProfile: instanceProfile,
	}, nil
}
