package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// EndpointResources holds the two VPC endpoints
type EndpointResources struct {
	S3GatewayEndpoint        *ec2.VpcEndpoint
	KinesisInterfaceEndpoint *ec2.VpcEndpoint
}

// createEndpointResources creates the private service paths out of the VPC.
// S3 only supports the Gateway endpoint pattern (route table entries, no
// ENI); Kinesis only supports the Interface pattern (an ENI with private
// DNS). The interface endpoint lives in the private subnet so the isolated
// instance can reach the stream without any internet path.
func createEndpointResources(ctx *pulumi.Context, network *NetworkResources) (*EndpointResources, error) {
	awsCfg := config.New(ctx, "aws")
	region := awsCfg.Require("region")

	// Create S3 Gateway VPC Endpoint
	s3Endpoint, err := ec2.NewVpcEndpoint(ctx, "s3-endpoint", &ec2.VpcEndpointArgs{
		VpcId:           network.Vpc.ID(),
		ServiceName:     pulumi.String(fmt.Sprintf("com.amazonaws.%s.s3", region)),
		VpcEndpointType: pulumi.String("Gateway"),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-s3-endpoint"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Associate the S3 endpoint with both route tables
	_, err = ec2.NewVpcEndpointRouteTableAssociation(ctx, "s3-endpoint-public-rt", &ec2.VpcEndpointRouteTableAssociationArgs{
		RouteTableId:  network.PublicRouteTable.ID(),
		VpcEndpointId: s3Endpoint.ID(),
	})
	if err != nil {
		return nil, err
	}

	_, err = ec2.NewVpcEndpointRouteTableAssociation(ctx, "s3-endpoint-private-rt", &ec2.VpcEndpointRouteTableAssociationArgs{
		RouteTableId:  network.PrivateRouteTable.ID(),
		VpcEndpointId: s3Endpoint.ID(),
	})
	if err != nil {
		return nil, err
	}

	// Create Kinesis Interface VPC Endpoint in the private subnet only
	kinesisEndpoint, err := ec2.NewVpcEndpoint(ctx, "kinesis-endpoint", &ec2.VpcEndpointArgs{
		VpcId:             network.Vpc.ID(),
		ServiceName:       pulumi.String(fmt.Sprintf("com.amazonaws.%s.kinesis-streams", region)),
		VpcEndpointType:   pulumi.String("Interface"),
		SubnetIds:         pulumi.StringArray{network.PrivateSubnet.ID()},
		SecurityGroupIds:  pulumi.StringArray{network.Ec2SecurityGroup.ID()},
		PrivateDnsEnabled: pulumi.Bool(true),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-kinesis-endpoint"),
		},
	})
	if err != nil {
		return nil, err
	}

	return &EndpointResources{
		S3GatewayEndpoint:        s3Endpoint,
		KinesisInterfaceEndpoint: kinesisEndpoint,
	}, nil
}
