// exportctl is an operator CLI for the export pipeline: trigger an export,
// inspect queue depth, and seed local test data.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"listkeeper-backend/application/workers"
	"listkeeper-backend/domain"
	"listkeeper-backend/infrastructure/config"
	"listkeeper-backend/infrastructure/di"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	rootCmd := &cobra.Command{
		Use:   "exportctl",
		Short: "Operate the list export pipeline",
	}
	rootCmd.AddCommand(enqueueCmd(container))
	rootCmd.AddCommand(depthCmd(container))
	rootCmd.AddCommand(seedCmd(container))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func enqueueCmd(c *di.Container) *cobra.Command {
	var userID, encodedID string

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Trigger a full export for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := uuid.New().String()
			body, err := workers.WrapInitial(workers.ExportRequested{
				UserID:    userID,
				EncodedID: encodedID,
				RequestID: requestID,
			})
			if err != nil {
				return fmt.Errorf("encode export trigger: %w", err)
			}
			if err := c.MessageQueue.Send(cmd.Context(), body); err != nil {
				return fmt.Errorf("enqueue export trigger: %w", err)
			}
			fmt.Printf("Export queued, request id %s\n", requestID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "internal user id")
	cmd.Flags().StringVar(&encodedID, "encoded-id", "", "user's opaque public id")
	cmd.MarkFlagRequired("user-id")
	cmd.MarkFlagRequired("encoded-id")
	return cmd
}

func depthCmd(c *di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "depth",
		Short: "Show the approximate number of queued export messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := c.Queue.Depth(cmd.Context())
			if err != nil {
				return fmt.Errorf("read queue depth: %w", err)
			}
			fmt.Printf("Approximate queue depth: %d\n", depth)
			return nil
		},
	}
}

func seedCmd(c *di.Container) *cobra.Command {
	var userID, listID string
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo items into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for i := 0; i < count; i++ {
				item := domain.ListItem{
					UserID:         userID,
					ListExternalID: listID,
					Title:          fmt.Sprintf("Seed Item %d", i+1),
					URL:            fmt.Sprintf("https://example.com/articles/%d", i+1),
					SortOrder:      i,
					CreatedAt:      time.Now().UTC(),
				}
				id, err := c.ItemRepository.PutItem(ctx, item)
				if err != nil {
					return fmt.Errorf("insert item %d: %w", i+1, err)
				}
				if err := c.ItemRepository.PutHighlight(ctx, domain.Highlight{
					ItemID:    id,
					Quote:     fmt.Sprintf("A memorable line from item %d.", i+1),
					CreatedAt: time.Now().UTC(),
				}); err != nil {
					return fmt.Errorf("insert highlight for item %d: %w", i+1, err)
				}
			}
			fmt.Printf("Seeded %d items into list %s\n", count, listID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "local-user", "internal user id to own the items")
	cmd.Flags().StringVar(&listID, "list-id", "local-list", "external list id")
	cmd.Flags().IntVar(&count, "count", 25, "number of items to insert")
	return cmd
}
