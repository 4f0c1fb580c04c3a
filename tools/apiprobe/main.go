package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"tubewise/config"
	"tubewise/services/recommender"
)

func main() {
	settingsPath := flag.String("settings", "settings.json", "path to the settings file")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: apiprobe [-settings file] history|watch-later|user|recommend <query>|ingest <topic> [max]")
		os.Exit(1)
	}

	cfg := config.NewConfigAdapter(config.NewManager(*settingsPath)).ClientConfig()
	cfg.Timeout = *timeout
	client := recommender.NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	out, err := probe(ctx, client, flag.Arg(0), flag.Args()[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func probe(ctx context.Context, client *recommender.Client, cmd string, args []string) (any, error) {
	switch cmd {
	case "history":
		return client.History(ctx)
	case "watch-later":
		return client.WatchLater(ctx)
	case "user":
		return client.GetUser(ctx)
	case "recommend":
		if len(args) == 0 {
			return nil, fmt.Errorf("recommend needs a query")
		}
		return client.Recommend(ctx, args[0])
	case "ingest":
		if len(args) == 0 {
			return nil, fmt.Errorf("ingest needs a topic")
		}
		limit := 5
		if len(args) > 1 {
			if _, err := fmt.Sscanf(args[1], "%d", &limit); err != nil {
				return nil, fmt.Errorf("invalid max %q", args[1])
			}
		}
		msg, err := client.TriggerIngestion(ctx, args[0], limit)
		return map[string]string{"message": msg}, err
	}
	return nil, fmt.Errorf("unknown command %q", cmd)
}
