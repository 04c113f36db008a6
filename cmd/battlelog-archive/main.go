package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	battlelog "github.com/brisppy/battlelog-archive"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	// Prepare cmd
	cmd := &cobra.Command{
		Use:   "battlelog-archive [profile] [cookie-file]",
		Short: "CLI tool for archiving a Battlelog soldier's stats and battle reports",
		Long: "Downloads a soldier's profile, club, stat and battle report data " +
			"from Battlelog, authenticated with a Netscape cookie export, and " +
			"saves every response as a file.",
		Args: cobra.ExactArgs(2),
		RunE: cmdHandler,
	}

	cmd.Flags().StringP("output", "o", ".", "directory to save the archive under")
	cmd.Flags().StringP("user-agent", "u", "", "set custom user agent")
	cmd.Flags().BoolP("gzip", "z", false, "gzip each output file")
	cmd.Flags().BoolP("quiet", "q", false, "disable logging")
	cmd.Flags().Bool("verbose", false, "more verbose logging")

	cmd.Flags().Bool("skip-reports", false, "archive only the summary resources")
	cmd.Flags().IntP("timeout", "t", 60, "maximum time (in second) before request timeout")
	cmd.Flags().Int("max-retries", 0, "retries for gateway-timeout and rate-limit responses")
	cmd.Flags().Bool("insecure", false, "skip X.509 (TLS) certificate verification")
	cmd.Flags().Int64("max-concurrent-download", 10, "max concurrent battle report downloads")

	// Execute
	err := cmd.Execute()
	if err != nil {
		logrus.Fatalln(err)
	}
}

func cmdHandler(cmd *cobra.Command, args []string) error {
	profileName := args[0]
	cookiesFilePath := args[1]

	// Parse flags
	outputDir, _ := cmd.Flags().GetString("output")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	useGzip, _ := cmd.Flags().GetBool("gzip")
	disableLog, _ := cmd.Flags().GetBool("quiet")
	useVerboseLog, _ := cmd.Flags().GetBool("verbose")

	skipReports, _ := cmd.Flags().GetBool("skip-reports")
	timeout, _ := cmd.Flags().GetInt("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	skipTLSVerification, _ := cmd.Flags().GetBool("insecure")
	maxConcurrentDownload, _ := cmd.Flags().GetInt64("max-concurrent-download")

	if profileName == "" {
		return errors.New("profile name must not be empty")
	}

	// Read cookies file before anything touches the network
	cookiesMap, err := parseCookiesFile(cookiesFilePath)
	if err != nil {
		return errors.Wrap(err, "load cookies")
	}

	cookies := cookiesForHost(cookiesMap, battlelog.Hostname)
	if len(cookies) == 0 {
		return errors.Errorf("no cookies for %s found in %s", battlelog.Hostname, cookiesFilePath)
	}

	var transport http.RoundTripper
	if skipTLSVerification {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	arc := &battlelog.Archiver{
		UserAgent:        userAgent,
		EnableLog:        !disableLog,
		EnableVerboseLog: !disableLog && useVerboseLog,

		Transport:             transport,
		RequestTimeout:        time.Duration(timeout) * time.Second,
		MaxRetries:            maxRetries,
		MaxConcurrentDownload: maxConcurrentDownload,

		OutputDir:   outputDir,
		UseGzip:     useGzip,
		SkipReports: skipReports,
	}
	arc.Validate()
	arc.WithCookies(cookies)

	if !disableLog {
		logrus.Printf("archival started for %s\n", profileName)
	}

	if err := arc.Archive(context.Background(), profileName); err != nil {
		return errors.Wrapf(err, "archive %s", profileName)
	}

	if !disableLog {
		logrus.Printf("archival finished for %s\n", profileName)
	}

	return nil
}
