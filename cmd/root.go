/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2020  Pierre-Emmanuel Jacquier
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gercyc/IPTVProxy/pkg/config"
	"github.com/gercyc/IPTVProxy/pkg/server"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "iptv-proxy",
	Short: "Xtream codes compatible server backed by an M3U playlist",
	Long: `IPTV Proxy serves an M3U playlist through the Xtream codes client API
(player_api.php, get.php, xmltv.php) and relays media through itself.

It supports:
- M3U playlists from a local file or an http(s) URL
- Live, movie and series listings with generated guide data
- Range aware stream relaying with HLS manifest rewriting
- Procedural mock data when no playlist is available`,

	RunE: func(cmd *cobra.Command, args []string) error {
		utils.ConfigureLogging(viper.GetString("log-level"), viper.GetBool("debug-logging"), viper.GetString("log-file"))
		defer utils.Close()

		conf := proxyConfigFromViper()
		if err := conf.Validate(); err != nil {
			return utils.PrintErrorAndReturn(err)
		}

		srv, err := server.NewServer(conf)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Serve(ctx)
	},
}

// proxyConfigFromViper builds the service configuration from flags,
// environment and config file.
func proxyConfigFromViper() *config.ProxyConfig {
	timeout := viper.GetDuration("upstream-timeout")
	if timeout == 0 {
		timeout = config.DefaultUpstreamTimeout
	}
	return &config.ProxyConfig{
		HostConfig: &config.HostConfiguration{
			Hostname: viper.GetString("hostname"),
			Port:     viper.GetInt("port"),
		},
		PlaylistSource:  viper.GetString("playlist"),
		BaseURL:         viper.GetString("base-url"),
		AdvertisedPort:  viper.GetInt("advertised-port"),
		HTTPS:           viper.GetBool("https"),
		User:            config.CredentialString(viper.GetString("user")),
		Password:        config.CredentialString(viper.GetString("password")),
		UpstreamTimeout: timeout,
		UserAgent:       viper.GetString("user-agent"),
		Timezone:        viper.GetString("timezone"),
		WatchPlaylist:   viper.GetBool("watch"),
		APIKey:          viper.GetString("api-key"),
		MetricsEnabled:  viper.GetBool("metrics"),
	}
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.iptv-proxy.yaml)")

	// Logging flags
	rootCmd.PersistentFlags().Bool("debug-logging", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	// Catalog flags
	rootCmd.Flags().StringP("playlist", "p", "us-grc.m3u", "M3U playlist file path or http(s) URL")
	rootCmd.Flags().Bool("watch", false, "Reload the catalog when the playlist file changes")

	// Listening and published address flags
	rootCmd.Flags().String("base-url", "", "Externally visible base URL used in proxy URLs")
	rootCmd.Flags().String("hostname", "localhost", "Hostname used to derive the base URL")
	rootCmd.Flags().Int("port", 8080, "Listening port")
	rootCmd.Flags().Int("advertised-port", 0, "Port to use in generated URLs (for reverse proxy)")
	rootCmd.Flags().BoolP("https", "", false, "Use HTTPS for generated URLs")
	rootCmd.Flags().String("timezone", "UTC", "Timezone published in server_info")

	// Authentication flags
	rootCmd.Flags().String("user", "demo", "Client username")
	rootCmd.Flags().String("password", "demo123", "Client password")
	rootCmd.Flags().String("api-key", "", "Key for /api/internal (random when empty)")

	// Upstream flags
	rootCmd.Flags().Duration("upstream-timeout", config.DefaultUpstreamTimeout, "Upstream connect and response header timeout")
	rootCmd.Flags().String("user-agent", utils.DefaultUserAgent, "User-Agent sent upstream when an entry has none")

	rootCmd.Flags().Bool("metrics", true, "Expose prometheus metrics on /metrics")

	// Bind all flags to viper
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		log.Fatal("Error binding PFlags to viper")
	}
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		log.Fatal("Error binding PFlags to viper")
	}

	rootCmd.AddCommand(validateCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory and current directory
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".iptv-proxy")
	}

	// IPTV_ prefix keeps USER and PASSWORD of the login shell out of the way
	viper.SetEnvPrefix("iptv")
	// Replace hyphens with underscores in environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Read environment variables
	viper.AutomaticEnv()

	// Read in config file if found
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
