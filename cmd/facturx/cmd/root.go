package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/facturx/internal/llm"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	verbose     bool
	profileName string
	countryCode string
	runChecks   bool

	// LLM address structuring (opt-in)
	llmAddress bool
	apiKey     string
	llmBaseURL string
	llmModel   string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "facturx",
	Short: "Generate Factur-X e-invoices (CII XML and hybrid PDFs)",
	Long: `facturx converts raw invoice records into EN 16931 Cross-Industry
Invoice XML and embeds the XML into rendered PDFs as factur-x.xml.

Profiles: minimum, basicwl, basic, en16931 (default), extended.

Examples:
  # Generate XML only
  facturx generate invoice.json -o invoice.xml

  # Generate XML and merge it into a rendered PDF
  facturx generate invoice.json --pdf rendered.pdf -o invoice-facturx.pdf

  # Embed existing XML into a PDF
  facturx embed rendered.pdf factur-x.xml -o invoice-facturx.pdf

  # Check record consistency without generating
  facturx check invoice.json

  # Inspect a hybrid PDF
  facturx inspect invoice-facturx.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Factur-X profile (env: FACTURX_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&countryCode, "country", "", "Domestic default country code (env: FACTURX_COUNTRY)")
	rootCmd.PersistentFlags().BoolVar(&runChecks, "checks", false, "Run consistency checks before serialization")
	rootCmd.PersistentFlags().BoolVar(&llmAddress, "llm-address", false, "Structure free-text addresses with an LLM instead of the regex heuristic")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: FACTURX_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: FACTURX_LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for address structuring (env: FACTURX_LLM_MODEL)")

	cobra.OnInitialize(initConfig)
}

// initConfig resolves flag > environment > optional facturx.yaml config file.
func initConfig() {
	viper.SetEnvPrefix("FACTURX")
	viper.AutomaticEnv()

	viper.SetConfigName("facturx")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	if profileName == "" {
		profileName = viper.GetString("profile")
	}
	if countryCode == "" {
		countryCode = viper.GetString("country")
	}
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if llmBaseURL == "" {
		llmBaseURL = viper.GetString("llm_base_url")
	}
	if llmModel == "" {
		llmModel = viper.GetString("llm_model")
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// newPipeline builds the generation pipeline from the global flags.
func newPipeline() *processor.Pipeline {
	opts := []processor.Option{
		processor.WithProfile(model.ParseProfile(profileName)),
		processor.WithChecks(runChecks),
	}
	if countryCode != "" {
		opts = append(opts, processor.WithCountryCode(countryCode))
	}

	if llmAddress && apiKey != "" {
		var clientOpts []llm.ClientOption
		if llmBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(llmBaseURL))
		}
		client := llm.NewClient(apiKey, clientOpts...)

		var parserOpts []llm.ParserOption
		if llmModel != "" {
			parserOpts = append(parserOpts, llm.WithModel(llmModel))
		}
		opts = append(opts, processor.WithAddressParser(llm.NewAddressParser(client, parserOpts...)))
		log.Debug().Msg("LLM address structuring enabled")
	}

	return processor.NewPipeline(opts...)
}
