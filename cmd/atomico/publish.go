package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/Eng-Zeus-Vianna/atomico/internal/config"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/assets"
)

func publishCmd() *cobra.Command {
	var (
		bucket string
		region string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Fingerprint static assets and upload them to S3",
		Long: `Fingerprint every file in the static directory, write the
manifest, and upload the hashed copies to the configured S3 bucket.

Bucket, region, and key prefix come from the assets.s3 section of
atomico.json. Flags override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(bucket, region, prefix)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from atomico.json)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from atomico.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix (default from atomico.json)")
	return cmd
}

func runPublish(bucket, region, prefix string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Find(cwd)
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = cfg.Assets.S3.Bucket
	}
	if region == "" {
		region = cfg.Assets.S3.Region
	}
	if prefix == "" {
		prefix = cfg.Assets.S3.Prefix
	}
	if bucket == "" {
		return fmt.Errorf("no S3 bucket configured; set assets.s3.bucket or pass --bucket")
	}

	staticDir := filepath.Join(cfg.Dir(), cfg.Static.Dir)
	manifest, err := assets.Build(staticDir)
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(staticDir, "manifest.json")
	if err := manifest.Save(manifestPath); err != nil {
		return err
	}
	success("fingerprinted %d assets", manifest.Len())

	client := s3.New(s3.Options{Region: region})
	publisher := assets.NewPublisher(client, bucket, prefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	n, err := publisher.Publish(ctx, manifest, staticDir)
	if err != nil {
		return err
	}
	success("uploaded %d objects to s3://%s/%s", n, bucket, prefix)
	return nil
}
