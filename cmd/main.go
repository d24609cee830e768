package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	handler "passwordSimBackend/internal/adapter/http"
	"passwordSimBackend/internal/adapter/memory"
	"passwordSimBackend/internal/adapter/routes"
	"passwordSimBackend/internal/core/advisor"
	"passwordSimBackend/internal/core/service"
	"passwordSimBackend/internal/pkg/metrics"
	"passwordSimBackend/internal/shared"
)

var (
	cfgFile     string
	enableDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "cracksim",
	Short: "Password attack and USB lockout simulator backend",
	Long:  "Educational backend that simulates password guessing against synthetic digests and a USB device lockout flow.",
	RunE:  runServer,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cracksim.yaml)")
	rootCmd.PersistentFlags().BoolVar(&enableDebug, "debug", false, "enable debug logging")
	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))

	viper.SetDefault("port", 8080)
	viper.SetDefault("brute_force_ceiling", 6)
	viper.SetDefault("wordlist_path", "")
	viper.SetDefault("sample_count", service.DefaultSampleCount)
	viper.SetDefault("ai_api_url", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent")
	viper.SetDefault("ai_api_key", "")
	viper.SetDefault("ai_timeout", "15s")
	viper.SetDefault("report_path", "cracksim_runs.log")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		cobra.CheckErr(err)
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName("cracksim")
	}

	viper.SetEnvPrefix("CRACKSIM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		shared.Logger.Info("loaded config file", "path", viper.ConfigFileUsed())
	}

	setupSharedState()
}

func setupSharedState() {
	shared.State.Port = viper.GetInt("port")
	shared.State.Debug = viper.GetBool("debug")
	shared.State.BruteForceCeiling = viper.GetInt("brute_force_ceiling")
	shared.State.WordlistPath = viper.GetString("wordlist_path")
	shared.State.SampleCount = viper.GetInt("sample_count")
	shared.State.AIAPIURL = viper.GetString("ai_api_url")
	shared.State.AIAPIKey = viper.GetString("ai_api_key")
	shared.State.AITimeout = viper.GetDuration("ai_timeout")

	if shared.State.Debug {
		shared.Logger.SetLevel(log.DebugLevel)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	reporter, err := metrics.NewReporter(viper.GetString("report_path"))
	if err != nil {
		return fmt.Errorf("opening run report log: %w", err)
	}
	defer reporter.Close()

	adv := advisor.New(shared.State.AIAPIURL, shared.State.AIAPIKey, shared.State.AITimeout)
	if !adv.Configured() {
		shared.Logger.Warn("AI advisor not configured, AI attacks will report as unavailable")
	}

	attackService := service.NewAttackService(
		memory.NewAttackLog(),
		adv,
		metrics.NewCollector(),
		reporter,
		shared.State.BruteForceCeiling,
		shared.State.SampleCount,
	)
	deviceService := service.NewDeviceService(memory.NewDeviceStore(), memory.NewUnlockLog())

	if !shared.State.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	routes.SetupRoutes(router, handler.NewHandler(attackService, deviceService))

	addr := fmt.Sprintf(":%d", shared.State.Port)
	shared.Logger.Info("starting simulator backend", "addr", addr)
	return router.Run(addr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		shared.Logger.Fatal("server exited", "error", err)
	}
}
