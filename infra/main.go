package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/programmableapple/financialAdvisor/infra/cloudrun"
	"github.com/programmableapple/financialAdvisor/infra/docker"
	"github.com/programmableapple/financialAdvisor/infra/firestore"
	"github.com/programmableapple/financialAdvisor/infra/kms"
	"github.com/programmableapple/financialAdvisor/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// enable KMS and create the key that encrypts stored refresh tokens
		kmsSvc, err := kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}

		keyName, err := kms.CreateKey(ctx, prov, "api", "session-tokens")
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, keyName, kmsSvc, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
