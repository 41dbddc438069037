package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/stretchr/testify/require"
)

// declaredResource is one row of the recorded resource graph
type declaredResource struct {
	Token  string
	Name   string
	Inputs resource.PropertyMap
}

// stackRecorder mocks the engine and records every resource registration
// so tests can assert on the declared graph
type stackRecorder struct {
	mu        sync.Mutex
	resources []declaredResource
}

func (r *stackRecorder) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	r.mu.Lock()
	r.resources = append(r.resources, declaredResource{
		Token:  args.TypeToken,
		Name:   args.Name,
		Inputs: args.Inputs,
	})
	r.mu.Unlock()

	outputs := resource.PropertyMap{}
	for k, v := range args.Inputs {
		outputs[k] = v
	}

	// Provider-assigned attributes the program reads back
	switch args.TypeToken {
	case "aws:s3/bucket:Bucket":
		outputs["arn"] = resource.NewStringProperty("arn:aws:s3:::" + args.Name)
		outputs["bucket"] = resource.NewStringProperty(args.Name)
	case "aws:kinesis/stream:Stream":
		outputs["arn"] = resource.NewStringProperty("arn:aws:kinesis:us-east-1:123456789012:stream/" + args.Name)
		outputs["name"] = resource.NewStringProperty(args.Name)
	case "aws:iam/role:Role":
		outputs["arn"] = resource.NewStringProperty("arn:aws:iam::123456789012:role/" + args.Name)
		outputs["name"] = resource.NewStringProperty(args.Name)
	case "aws:iam/instanceProfile:InstanceProfile":
		outputs["arn"] = resource.NewStringProperty("arn:aws:iam::123456789012:instance-profile/" + args.Name)
		outputs["name"] = resource.NewStringProperty(args.Name)
	case "aws:ec2/instance:Instance":
		outputs["publicIp"] = resource.NewStringProperty("203.0.113.10")
		outputs["privateIp"] = resource.NewStringProperty("10.0.1.10")
	}

	return args.Name + "_id", outputs, nil
}

func (r *stackRecorder) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	if args.Token == "aws:ec2/getAmi:getAmi" {
		return resource.PropertyMap{
			"id":           resource.NewStringProperty("ami-0a1b2c3d4e5f67890"),
			"architecture": resource.NewStringProperty("x86_64"),
			"name":         resource.NewStringProperty("al2023-ami-2023.9.20260815.0-kernel-6.1-x86_64"),
		}, nil
	}
	return args.Args, nil
}

// byToken returns all recorded resources of one type, in declaration order
func (r *stackRecorder) byToken(token string) []declaredResource {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []declaredResource
	for _, res := range r.resources {
		if res.Token == token {
			out = append(out, res)
		}
	}
	return out
}

// byName returns the single recorded resource with the given name
func (r *stackRecorder) byName(t *testing.T, name string) declaredResource {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.resources {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("resource %q was not declared", name)
	return declaredResource{}
}

// snapshot returns the graph as a map keyed by type and name, for
// structural comparison between runs
func (r *stackRecorder) snapshot() map[string]resource.PropertyMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]resource.PropertyMap, len(r.resources))
	for _, res := range r.resources {
		snap[res.Token+"::"+res.Name] = res.Inputs
	}
	return snap
}

// runLabStack runs the full program against the mocked engine with the
// given parameters and returns the recorded graph
func runLabStack(t *testing.T, keypair, safeip string) *stackRecorder {
	t.Helper()
	t.Setenv("PULUMI_CONFIG", fmt.Sprintf(
		`{"vpc-endpoint-lab:keypair":%q,"vpc-endpoint-lab:safeip":%q,"aws:region":"us-east-1"}`,
		keypair, safeip))

	rec := &stackRecorder{}
	err := pulumi.RunErr(deployStack, pulumi.WithMocks("vpc-endpoint-lab", "test", rec))
	require.NoError(t, err)
	return rec
}

func stringProp(t *testing.T, m resource.PropertyMap, key string) string {
	t.Helper()
	v, ok := m[resource.PropertyKey(key)]
	require.True(t, ok, "missing property %q", key)
	require.True(t, v.IsString(), "property %q is not a string", key)
	return v.StringValue()
}

func boolProp(t *testing.T, m resource.PropertyMap, key string) bool {
	t.Helper()
	v, ok := m[resource.PropertyKey(key)]
	require.True(t, ok, "missing property %q", key)
	require.True(t, v.IsBool(), "property %q is not a bool", key)
	return v.BoolValue()
}

func numberProp(t *testing.T, m resource.PropertyMap, key string) float64 {
	t.Helper()
	v, ok := m[resource.PropertyKey(key)]
	require.True(t, ok, "missing property %q", key)
	require.True(t, v.IsNumber(), "property %q is not a number", key)
	return v.NumberValue()
}

func arrayProp(t *testing.T, m resource.PropertyMap, key string) []resource.PropertyValue {
	t.Helper()
	v, ok := m[resource.PropertyKey(key)]
	require.True(t, ok, "missing property %q", key)
	require.True(t, v.IsArray(), "property %q is not an array", key)
	return v.ArrayValue()
}
