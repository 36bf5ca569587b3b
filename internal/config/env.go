package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "novelpiad"

var envKeyReplacer = strings.NewReplacer(".", "_")

// applyEnv overlays NOVELPIAD_* variables, e.g. NOVELPIAD_COOKIE or
// NOVELPIAD_USER_AGENT. Unset variables leave the value alone.
func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	str := func(key string, dst *string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}

	str("output", &c.Output)
	str("base_url", &c.BaseURL)
	str("log_file", &c.LogFile)
	str("default_range", &c.DefaultRange)
	str("default_list", &c.DefaultList)
	str("cookie", &c.Cookie)
	str("cookie_file", &c.CookieFile)
	str("user_agent", &c.UserAgent)

	if v.IsSet("default_novel") {
		c.DefaultNovel = v.GetInt("default_novel")
	}
	if v.IsSet("timeout_seconds") {
		c.TimeoutSeconds = v.GetInt("timeout_seconds")
	}
	if v.IsSet("debug") {
		c.Debug = v.GetBool("debug")
	}
	if v.IsSet("skip_existing") {
		c.SkipExisting = v.GetBool("skip_existing")
	}
	if v.IsSet("cf_bypass") {
		c.CloudflareBypass = v.GetBool("cf_bypass")
	}
}
