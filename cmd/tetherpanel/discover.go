package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/tetherpanel/internal/mirror"
)

var discoverTimeout int

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find status mirrors on the local network",
	Long: `Browse mDNS for panels that advertise their status mirror
(mirror.advertise in the configuration).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Scanning for tetherpanel mirrors (timeout: %ds)...\n\n", discoverTimeout)

		scanner := mirror.NewScanner()
		scanner.Timeout = time.Duration(discoverTimeout) * time.Second
		peers, err := scanner.Scan(cmd.Context())
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if len(peers) == 0 {
			fmt.Println("No mirrors found.")
			return nil
		}
		for i, p := range peers {
			fmt.Printf("%d. %s\n", i+1, p)
			fmt.Printf("   Watch: %s\n\n", p.URL())
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 5, "Scan timeout in seconds")
	rootCmd.AddCommand(discoverCmd)
}
