package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const (
	vpcCidr           = "10.0.0.0/20"
	publicSubnetCidr  = "10.0.0.0/24"
	privateSubnetCidr = "10.0.1.0/24"
)

// NetworkResources holds all the networking resources
type NetworkResources struct {
	Vpc               *ec2.Vpc
	PublicSubnet      *ec2.Subnet
	PrivateSubnet     *ec2.Subnet
	InternetGateway   *ec2.InternetGateway
	PublicRouteTable  *ec2.RouteTable
	PrivateRouteTable *ec2.RouteTable
	Ec2SecurityGroup  *ec2.SecurityGroup
}

// createNetworkResources creates the VPC, the two subnets and the shared
// security group. The private subnet is fully isolated: its route table
// carries no routes, and there is no NAT gateway anywhere in the stack.
func createNetworkResources(ctx *pulumi.Context, params *StackParams) (*NetworkResources, error) {
	// Get configuration values
	awsCfg := config.New(ctx, "aws")
	region := awsCfg.Require("region")

	// Single-AZ lab, both subnets in the region's first zone
	az := fmt.Sprintf("%sa", region)

	// Create VPC
	vpc, err := ec2.NewVpc(ctx, "endpoint-lab-vpc", &ec2.VpcArgs{
		CidrBlock:          pulumi.String(vpcCidr),
		EnableDnsSupport:   pulumi.Bool(true),
		EnableDnsHostnames: pulumi.Bool(true),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-vpc"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create public subnet
	publicSubnet, err := ec2.NewSubnet(ctx, "public-subnet", &ec2.SubnetArgs{
		VpcId:            vpc.ID(),
		CidrBlock:        pulumi.String(publicSubnetCidr),
		AvailabilityZone: pulumi.String(az),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-public-subnet"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create private subnet in the same AZ
	privateSubnet, err := ec2.NewSubnet(ctx, "private-subnet", &ec2.SubnetArgs{
		VpcId:            vpc.ID(),
		CidrBlock:        pulumi.String(privateSubnetCidr),
		AvailabilityZone: pulumi.String(az),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-private-subnet"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create Internet Gateway
	igw, err := ec2.NewInternetGateway(ctx, "endpoint-lab-igw", &ec2.InternetGatewayArgs{
		VpcId: vpc.ID(),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-igw"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create public route table
	publicRouteTable, err := ec2.NewRouteTable(ctx, "public-rt", &ec2.RouteTableArgs{
		VpcId: vpc.ID(),
		Routes: ec2.RouteTableRouteArray{
			&ec2.RouteTableRouteArgs{
				CidrBlock: pulumi.String("0.0.0.0/0"),
				GatewayId: igw.ID(),
			},
		},
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-public-rt"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create private route table (no routes at all: isolated subnet)
	privateRouteTable, err := ec2.NewRouteTable(ctx, "private-rt", &ec2.RouteTableArgs{
		VpcId: vpc.ID(),
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-private-rt"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Associate public subnet with public route table
	_, err = ec2.NewRouteTableAssociation(ctx, "public-rt-assoc", &ec2.RouteTableAssociationArgs{
		SubnetId:     publicSubnet.ID(),
		RouteTableId: publicRouteTable.ID(),
	})
	if err != nil {
		return nil, err
	}

	// Associate private subnet with private route table
	_, err = ec2.NewRouteTableAssociation(ctx, "private-rt-assoc", &ec2.RouteTableAssociationArgs{
		SubnetId:     privateSubnet.ID(),
		RouteTableId: privateRouteTable.ID(),
	})
	if err != nil {
		return nil, err
	}

	// Create the shared security group. SSH only from the nominated safe
	// IP; everything TCP is open between members of the VPC, which also
	// covers HTTPS to the Kinesis interface endpoint. The two rules must
	// stay separate.
	ec2SecurityGroup, err := ec2.NewSecurityGroup(ctx, "endpoint-lab-sg", &ec2.SecurityGroupArgs{
		VpcId:       vpc.ID(),
		Description: pulumi.String("Security group for the endpoint lab instances"),
		Ingress: ec2.SecurityGroupIngressArray{
			&ec2.SecurityGroupIngressArgs{
				Protocol:    pulumi.String("tcp"),
				FromPort:    pulumi.Int(22),
				ToPort:      pulumi.Int(22),
				CidrBlocks:  pulumi.StringArray{pulumi.String(params.SafeIp)},
				Description: pulumi.String("Allow SSH from the safe IP only"),
			},
			&ec2.SecurityGroupIngressArgs{
				Protocol:    pulumi.String("tcp"),
				FromPort:    pulumi.Int(0),
				ToPort:      pulumi.Int(65535),
				CidrBlocks:  pulumi.StringArray{pulumi.String(vpcCidr)},
				Description: pulumi.String("Allow all TCP within the VPC"),
			},
		},
		Egress: ec2.SecurityGroupEgressArray{
			&ec2.SecurityGroupEgressArgs{
				Protocol:    pulumi.String("-1"),
				FromPort:    pulumi.Int(0),
				ToPort:      pulumi.Int(0),
				CidrBlocks:  pulumi.StringArray{pulumi.String("0.0.0.0/0")},
				Description: pulumi.String("Allow all outbound traffic"),
			},
		},
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-sg"),
		},
	})
	if err != nil {
		return nil, err
	}

	return &NetworkResources{
		Vpc:               vpc,
		PublicSubnet:      publicSubnet,
		PrivateSubnet:     privateSubnet,
		InternetGateway:   igw,
		PublicRouteTable:  publicRouteTable,
		PrivateRouteTable: privateRouteTable,
		Ec2SecurityGroup:  ec2SecurityGroup,
	}, nil
}
