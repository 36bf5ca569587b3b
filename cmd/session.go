package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/brogergvhs/novelpiad/internal/config"
	"github.com/brogergvhs/novelpiad/internal/providers/novelpia"
	"github.com/brogergvhs/novelpiad/internal/ui"
	"github.com/brogergvhs/novelpiad/internal/util"

	"github.com/spf13/cobra"
)

// headers/auth and site flags shared by every command that talks to the site
var (
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagBaseURL    string
	flagCFBypass   bool
)

func addSiteFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"LOGINKEY=...; USERKEY=...\"")
	c.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	c.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	c.Flags().StringVar(&flagBaseURL, "base-url", "", "site root (default "+config.DefaultBaseURL+")")
	c.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "wrap the transport with Cloudflare bypass headers")
}

type session struct {
	cfg      *config.Config
	usedPath string
	log      *ui.Logger
	client   *http.Client
	src      *novelpia.Client

	closeLog func()
}

func (s *session) Close() {
	if s.closeLog != nil {
		s.closeLog()
	}
}

// newSession merges config, env and flags, then builds the logger, the HTTP
// client and the site adapter from the result.
func newSession(opts config.Options) (*session, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = flagDebug
	opts.Cookie = flagCookie
	opts.CookieFile = flagCookieFile
	opts.UserAgent = flagUserAgent
	opts.BaseURL = flagBaseURL
	opts.CloudflareBypass = flagCFBypass

	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, usedPath: usedPath, log: ui.NewLogger(cfg.Debug)}

	if cfg.LogFile != "" {
		closer, err := s.log.AddFileOutput(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		s.closeLog = func() { _ = closer.Close() }
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		s.Close()
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	s.client, err = util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CookieHost:       base.Hostname(),
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      s.log,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	if cfg.Cookie == "" && cfg.CookieFile == "" {
		s.log.Warnf("No cookie configured; episodes behind a login will fail to load")
	}

	s.src = novelpia.New(s.client, cfg.BaseURL, s.log)
	return s, nil
}
