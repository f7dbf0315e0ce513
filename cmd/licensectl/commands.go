package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bkap/internal/license/models"
	vendorModels "bkap/internal/marketplace/models"
	"bkap/internal/marketplace/session"
	"bkap/internal/notice/client"
	noticeModels "bkap/internal/notice/models"
	"bkap/internal/platform/config"
	"bkap/internal/platform/logger"
	"bkap/pkg/secrets"
	"bkap/pkg/validation"
)

type globalOptions struct {
	server     string
	adminToken string
	actorID    string
	timeout    time.Duration
	verbose    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.FromEnv()
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "licensectl",
		Short:         "Administer the booking plugin license",
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.server, "server", "http://localhost"+cfg.Addr, "bkap server base URL")
	root.PersistentFlags().StringVar(&opts.adminToken, "admin-token", cfg.AdminToken, "admin token sent as X-Admin-Token")
	root.PersistentFlags().StringVar(&opts.actorID, "actor", "", "admin actor id sent as X-Admin-Actor-ID")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests at debug level")

	root.AddCommand(
		licenseCmd("status", "Show the stored license status", http.MethodGet, "/admin/license", opts),
		activateCmd(opts),
		licenseCmd("deactivate", "Deactivate the stored license key", http.MethodPost, "/admin/license/deactivate", opts),
		licenseCmd("check", "Re-check the stored license key with the store", http.MethodPost, "/admin/license/check", opts),
		dismissCmd(opts),
		vendorTokenCmd(cfg.Vendor),
		adminTokenCmd(),
	)
	return root
}

func activateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activate LICENSE_KEY",
		Short: "Store and activate a license key",
		Args: cobra.MatchAll(cobra.ExactArgs(1), func(_ *cobra.Command, args []string) error {
			if !validation.IsLicenseKey(strings.TrimSpace(args[0])) {
				return fmt.Errorf("%q is not a 32 character license key", args[0])
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(models.ActivateRequest{LicenseKey: args[0]})
			if err != nil {
				return err
			}
			return callLicense(cmd, opts, http.MethodPost, "/admin/license/activate", body)
		},
	}
}

func licenseCmd(use, short, method, path string, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body []byte
			if method == http.MethodPost {
				body = []byte("{}")
			}
			return callLicense(cmd, opts, method, path, body)
		},
	}
}

func callLicense(cmd *cobra.Command, opts *globalOptions, method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(opts.server, "/")+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", opts.adminToken)
	if opts.actorID != "" {
		req.Header.Set("X-Admin-Actor-ID", opts.actorID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s: %s (%s)", resp.Status, apiErr.Description, apiErr.Error)
	}

	var st models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func dismissCmd(opts *globalOptions) *cobra.Command {
	markers := make([]string, 0, len(noticeModels.Markers()))
	for _, m := range noticeModels.Markers() {
		markers = append(markers, string(m))
	}

	return &cobra.Command{
		Use:       "dismiss MARKER",
		Short:     "Dismiss an admin notice (" + strings.Join(markers, ", ") + ")",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: markers,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if opts.verbose {
				level = "debug"
			}
			ajax := client.New(strings.TrimRight(opts.server, "/")+"/admin/admin-ajax",
				client.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
				client.WithHeader("X-Admin-Token", opts.adminToken),
				client.WithHeader("X-Admin-Actor-ID", opts.actorID),
				client.WithLogger(logger.NewWithWriter(cmd.ErrOrStderr(), level)),
			)

			marker := noticeModels.Marker(args[0])
			page := client.NewPage(client.Notice{
				ID:                "cli-notice",
				Classes:           []string{"notice", marker.Class()},
				HasDismissControl: true,
			})
			ajax.Bind(page)
			page.Click("cli-notice")
			ajax.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "dismissal of %s sent\n", marker)
			return nil
		},
	}
}

func vendorTokenCmd(cfg config.Vendor) *cobra.Command {
	var (
		vendorID   string
		shopName   string
		signingKey string
		issuer     string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "vendor-token",
		Short: "Issue a vendor dashboard bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := session.New(signingKey, issuer, ttl).
				Issue(cmd.Context(), vendorModels.Vendor{ID: vendorID, ShopName: shopName})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&vendorID, "vendor-id", "", "vendor id (required)")
	cmd.Flags().StringVar(&shopName, "shop-name", "", "vendor shop name")
	cmd.Flags().StringVar(&signingKey, "signing-key", cfg.JWTSigningKey, "HS256 signing key")
	cmd.Flags().StringVar(&issuer, "issuer", cfg.JWTIssuer, "token issuer")
	cmd.Flags().DurationVar(&ttl, "ttl", cfg.TokenTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("vendor-id")
	return cmd
}


func adminTokenCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Generate an admin token and the bcrypt hash to configure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issued, err := secrets.NewAdminToken(token)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), issued.Env())
			return err
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "hash this token instead of generating one")
	return cmd
}
