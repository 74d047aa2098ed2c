package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hiehoo/tnetbot/internal/config"
)

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show funnel statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/stats")
		if err != nil {
			return err
		}

		var stats struct {
			Users        int
			Interactions int
			Purchases    int
			FollowUps    map[string]int
			Campaigns    map[string]int
		}
		if err := decodeJSON(resp, &stats); err != nil {
			return err
		}

		fmt.Printf("%s\n", colorize(colorBold, "Funnel"))
		fmt.Printf("  Users:        %d\n", stats.Users)
		fmt.Printf("  Interactions: %d\n", stats.Interactions)
		fmt.Printf("  Purchases:    %d\n", stats.Purchases)

		if len(stats.FollowUps) > 0 {
			fmt.Printf("\n%s\n", colorize(colorBold, "Follow-ups"))
			for _, status := range sortedKeys(stats.FollowUps) {
				fmt.Printf("  %-10s %d\n", status, stats.FollowUps[status])
			}
		}

		if len(stats.Campaigns) > 0 {
			fmt.Printf("\n%s\n", colorize(colorBold, "Campaigns"))
			for _, campaign := range sortedKeys(stats.Campaigns) {
				fmt.Printf("  %-16s %d\n", campaign, stats.Campaigns[campaign])
			}
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- user ---

var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show everything recorded about one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/users/" + args[0])
		if err != nil {
			return err
		}

		var detail struct {
			User struct {
				ID              int64
				Username        string
				FirstName       string
				LastName        string
				JoinedAt        string
				LastInteraction string
				Purchased       bool
				Campaign        string
			}
			Views []struct {
				Service   string
				ViewCount int
			}
			Purchases []struct {
				PlanCode    string
				Price       string
				PurchasedAt string
			}
			FollowUps []struct {
				Service     string
				Status      string
				ScheduledAt string
				Response    string
			}
		}
		if err := decodeJSON(resp, &detail); err != nil {
			return err
		}

		u := detail.User
		fmt.Printf("%s @%s (%s %s)\n", colorize(colorBold, strconv.FormatInt(u.ID, 10)), u.Username, u.FirstName, u.LastName)
		fmt.Printf("  Joined:    %s\n", u.JoinedAt)
		fmt.Printf("  Last seen: %s\n", u.LastInteraction)
		fmt.Printf("  Purchased: %v\n", u.Purchased)
		if u.Campaign != "" {
			fmt.Printf("  Campaign:  %s\n", u.Campaign)
		}

		if len(detail.Views) > 0 {
			fmt.Printf("\n%s\n", colorize(colorBold, "Services viewed"))
			for _, v := range detail.Views {
				fmt.Printf("  %-12s %d views\n", v.Service, v.ViewCount)
			}
		}

		if len(detail.Purchases) > 0 {
			fmt.Printf("\n%s\n", colorize(colorBold, "Purchases"))
			for _, p := range detail.Purchases {
				fmt.Printf("  %-20s %-12s %s\n", p.PlanCode, p.Price, p.PurchasedAt)
			}
		}

		if len(detail.FollowUps) > 0 {
			fmt.Printf("\n%s\n", colorize(colorBold, "Follow-ups"))
			for _, f := range detail.FollowUps {
				line := fmt.Sprintf("  %-12s %-10s %s", f.Service, f.Status, f.ScheduledAt)
				if f.Response != "" {
					line += "  (" + f.Response + ")"
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all users as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/users.csv")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
		}

		var writer *os.File
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			writer = f
		} else {
			writer = os.Stdout
		}

		if _, err := io.Copy(writer, resp.Body); err != nil {
			return err
		}

		if output != "" {
			printSuccess("Users exported to %s", output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("output", "", "output file path (default: stdout)")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
