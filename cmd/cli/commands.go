package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mauv0809/class-league/internal/access"
	"github.com/spf13/cobra"
)

var (
	searchTerm string
	accessCode string
	outputPath string
)

func init() {
	historyCmd.Flags().StringVarP(&searchTerm, "query", "q", "", "Only show matches whose team names or memo contain this text")
	exportCmd.Flags().StringVar(&accessCode, "code", "", "The access code of the league")
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "league.xlsx", "Where to write the workbook")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings of a league",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := leagueQuery()
		if err != nil {
			return err
		}
		return performGetRequest("/api/league/standings", query)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the match history of a league",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := leagueQuery()
		if err != nil {
			return err
		}
		if searchTerm != "" {
			query.Set("q", searchTerm)
		}
		return performGetRequest("/api/league/matches", query)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the league workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ref == "" {
			return errors.New("--ref is required")
		}
		target := host + "/api/league/export?" + url.Values{"ref": {ref}}.Encode()
		cookie, err := unlock()
		if err != nil {
			return err
		}

		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.AddCookie(cookie)
		req.Header.Set("X-Access-Code", accessCode)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("export failed with status %d: %s", resp.StatusCode, body)
		}

		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, err)
		}
		defer f.Close()
		n, err := io.Copy(f, resp.Body)
		if err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", n, outputPath)
		return nil
	},
}

// leagueQuery selects the read-only view of the league named by --ref.
func leagueQuery() (url.Values, error) {
	if ref == "" {
		return nil, errors.New("--ref is required")
	}
	return url.Values{"ref": {ref}, "view": {"1"}}, nil
}

// unlock passes the guest gate and returns the guest pass cookie.
func unlock() (*http.Cookie, error) {
	target := host + "/api/league/unlock?" + url.Values{"ref": {ref}}.Encode()
	body := fmt.Sprintf(`{"access_code":%q}`, accessCode)
	resp, err := http.Post(target, "application/json", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unlock failed with status %d: %s", resp.StatusCode, msg)
	}
	for _, c := range resp.Cookies() {
		if c.Name == access.CookieName(ref) {
			return c, nil
		}
	}
	return nil, errors.New("server did not issue a guest pass")
}

func performGetRequest(endpoint string, query url.Values) error {
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
