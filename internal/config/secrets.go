package config

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the subset of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets replaces secrets referenced by parameter name with their values
// from AWS SSM Parameter Store. It does nothing when no parameter is configured.
func (c *Config) ResolveSecrets(ctx context.Context) error {
	if c.Telegram.BotTokenParam == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return c.ResolveSecretsWith(ctx, ssm.NewFromConfig(awsCfg))
}

// ResolveSecretsWith resolves secrets through the given client.
func (c *Config) ResolveSecretsWith(ctx context.Context, client ParameterGetter) error {
	if c.Telegram.BotTokenParam == "" {
		return nil
	}
	token, err := parameterValue(ctx, client, c.Telegram.BotTokenParam)
	if err != nil {
		return err
	}
	c.Telegram.BotToken = token
	return nil
}

func parameterValue(ctx context.Context, client ParameterGetter, name string) (string, error) {
	decrypt := true
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("get parameter %s: empty value", name)
	}
	return *out.Parameter.Value, nil
}
