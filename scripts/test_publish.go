//go:build ignore

// Publishes a sample escalation event and waits until the worker acks it.
//
//	go run scripts/test_publish.go -redis localhost:6379 -to you@example.org
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/recommend"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "complaint-escalation-workers", "worker consumer group")
	to := flag.String("to", "", "override the authority email")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	authority := recommend.NewDirectory(nil).AuthorityFor(domain.CategoryNoise)
	if *to != "" {
		authority.Email = *to
	}

	event := domain.EscalationEvent{
		EventID:          uuid.New(),
		City:             "Lyon",
		Category:         domain.CategoryNoise,
		Authority:        authority,
		Center:           domain.Point{Lat: 45.7578, Lon: 4.8320},
		ComplaintIDs:     []int64{101, 102, 103},
		Count:            3,
		MaxIntensity:     4,
		Tier:             recommend.TierOf(4),
		SuggestedActions: recommend.Actions(domain.CategoryNoise, 4),
		CreatedAt:        time.Now().UTC(),
	}

	lastBefore := lastDelivered(ctx, client, *group)

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamComplaintEscalation,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamComplaintEscalation)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Authority: %s <%s>\n", authority.Department, authority.Email)

	fmt.Printf("\nWaiting for group %s to ack it...\n", *group)

	timeout := time.After(60 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: the message was not acked (is cmd/worker running?)")
			return
		case <-ticker.C:
			pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
				Stream: domain.StreamComplaintEscalation,
				Group:  *group,
				Start:  id,
				End:    id,
				Count:  1,
			}).Result()
			if err != nil {
				continue
			}

			if len(pending) > 0 {
				fmt.Printf("   pending on %s, deliveries %d\n", pending[0].Consumer, pending[0].RetryCount)
				continue
			}
			if last := lastDelivered(ctx, client, *group); last != "" && last != lastBefore {
				fmt.Println("\nAcked: the escalation email was sent")
				return
			}
		}
	}
}

// lastDelivered returns the last entry id handed to group, or "" when the
// group does not exist yet.
func lastDelivered(ctx context.Context, client *redis.Client, group string) string {
	groups, err := client.XInfoGroups(ctx, domain.StreamComplaintEscalation).Result()
	if err != nil {
		return ""
	}
	for _, g := range groups {
		if g.Name == group {
			return g.LastDeliveredID
		}
	}
	return ""
}
