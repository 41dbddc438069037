package main

import (
	"github.com/pulumi/pulumi-aws/sdk/v5/go/aws/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// ComputeResources holds the two lab instances
type ComputeResources struct {
	PublicInstance  *ec2.Instance
	PrivateInstance *ec2.Instance
}

// createComputeResources creates the public and private instances. They
// share the AMI, instance size, security group, role and key pair and
// differ only in subnet placement and public IP assignment.
func createComputeResources(ctx *pulumi.Context, params *StackParams, network *NetworkResources, iamResources *IamResources) (*ComputeResources, error) {
	// Get the latest Amazon Linux 2023 AMI
	ami, err := ec2.LookupAmi(ctx, &ec2.LookupAmiArgs{
		Owners:     []string{"amazon"},
		MostRecent: pulumi.BoolRef(true),
		NameRegex:  pulumi.StringRef("^al2023-ami-2023.*-x86_64$"),
		Filters: []ec2.GetAmiFilter{
			{
				Name:   "root-device-type",
				Values: []string{"ebs"},
			},
			{
				Name:   "virtualization-type",
				Values: []string{"hvm"},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	// Create the public instance, reachable from the safe IP over SSH
	publicInstance, err := ec2.NewInstance(ctx, "public-ec2", &ec2.InstanceArgs{
		Ami:                      pulumi.String(ami.Id),
		InstanceType:             pulumi.String("t3.micro"),
		SubnetId:                 network.PublicSubnet.ID(),
		VpcSecurityGroupIds:      pulumi.StringArray{network.Ec2SecurityGroup.ID()},
		AssociatePublicIpAddress: pulumi.Bool(true),
		KeyName:                  pulumi.String(params.KeyPairName),
		IamInstanceProfile:       iamResources.InstanceProfile.Name,
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-public-ec2"),
		},
	})
	if err != nil {
		return nil, err
	}

	// Create the private instance. VPC-local IP only; S3 and Kinesis are
	// reachable solely through the two VPC endpoints.
	privateInstance, err := ec2.NewInstance(ctx, "private-ec2", &ec2.InstanceArgs{
		Ami:                      pulumi.String(ami.Id),
		InstanceType:             pulumi.String("t3.micro"),
		SubnetId:                 network.PrivateSubnet.ID(),
		VpcSecurityGroupIds:      pulumi.StringArray{network.Ec2SecurityGroup.ID()},
		AssociatePublicIpAddress: pulumi.Bool(false),
		KeyName:                  pulumi.String(params.KeyPairName),
		IamInstanceProfile:       iamResources.InstanceProfile.Name,
		Tags: pulumi.StringMap{
			"Name": pulumi.String("endpoint-lab-private-ec2"),
		},
	})
	if err != nil {
		return nil, err
	}

	return &ComputeResources{
		PublicInstance:  publicInstance,
		PrivateInstance: privateInstance,
	}, nil
}
