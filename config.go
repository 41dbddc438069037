package main

import (
	"fmt"
	"net"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// StackParams holds the deploy-time parameters for the lab stack
type StackParams struct {
	KeyPairName string
	SafeIp      string
}

// loadStackParams reads stack configuration and validates it before any
// resource is declared
func loadStackParams(ctx *pulumi.Context) (*StackParams, error) {
	projectCfg := config.New(ctx, "vpc-endpoint-lab")
	params := &StackParams{
		KeyPairName: projectCfg.Require("keypair"),
		SafeIp:      projectCfg.Require("safeip"),
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the parameter syntax. The key pair must name an existing
// EC2 key pair and the safe IP must be a single IPv4 host in /32 form.
func (p *StackParams) Validate() error {
	if p.KeyPairName == "" {
		return fmt.Errorf("keypair must not be empty")
	}
	ip, ipNet, err := net.ParseCIDR(p.SafeIp)
	if err != nil {
		return fmt.Errorf("safeip %q is not valid CIDR notation: %w", p.SafeIp, err)
	}
	if ip.To4() == nil {
		return fmt.Errorf("safeip %q must be an IPv4 address", p.SafeIp)
	}
	if ones, _ := ipNet.Mask.Size(); ones != 32 {
		return fmt.Errorf("safeip %q must be a /32 host address", p.SafeIp)
	}
	return nil
}
