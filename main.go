package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// deployStack declares the whole lab topology in dependency order
func deployStack(ctx *pulumi.Context) error {
	// 0. Read and validate stack parameters
	params, err := loadStackParams(ctx)
	if err != nil {
		return err
	}

	// 1. Create VPC, subnets and the shared security group
	networkResources, err := createNetworkResources(ctx, params)
	if err != nil {
		return err
	}

	// 2. Create the S3 gateway endpoint and the Kinesis interface endpoint
	endpointResources, err := createEndpointResources(ctx, networkResources)
	if err != nil {
		return err
	}

	// 3. Create the demo bucket
	storageResources, err := createStorageResources(ctx)
	if err != nil {
		return err
	}

	// 4. Create the demo stream
	streamResources, err := createStreamResources(ctx)
	if err != nil {
		return err
	}

	// 5. Create the instance role scoped to the bucket and stream ARNs
	iamResources, err := createIamResources(ctx, storageResources, streamResources)
	if err != nil {
		return err
	}

	// 6. Create the public and private instances
	computeResources, err := createComputeResources(ctx, params, networkResources, iamResources)
	if err != nil {
		return err
	}

	// Export stack outputs
	ctx.Export("Ec2PublicIp", computeResources.PublicInstance.PublicIp)
	ctx.Export("Ec2PrivateIp", computeResources.PrivateInstance.PrivateIp)
	ctx.Export("S3Bucket", storageResources.Bucket.ID())
	ctx.Export("KdsStream", streamResources.Stream.Name)
	ctx.Export("S3GatewayEndpoint", endpointResources.S3GatewayEndpoint.ID())
	ctx.Export("KinesisInterfaceEndpoint", endpointResources.KinesisInterfaceEndpoint.ID())

	return nil
}

func main() {
	pulumi.Run(deployStack)
}
