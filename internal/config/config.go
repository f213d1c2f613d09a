package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Generator GeneratorConfig
	NLP       NLPConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// EmbeddingConfig selects the optional embedding backend used to
// re-rank distractors. Source "none" disables the enhancement path.
type EmbeddingConfig struct {
	Source string
	Ollama OllamaConfig
	OpenAI OpenAIConfig
	// CacheTTL bounds how long generated embeddings stay cached.
	CacheTTL time.Duration
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

// GeneratorConfig carries the quiz assembly knobs. Defaults follow the
// documented floor of 7 questions and the 60/40 multiple-choice mix.
type GeneratorConfig struct {
	MinQuestions        int
	MaxQuestions        int
	MultipleChoiceRatio float64
	FalseStatementRatio float64
	QuizCacheTTL        time.Duration
}

type NLPConfig struct {
	// EnableTagger gates the POS-tagger refinement of fact and concept
	// extraction. The rule-based path never requires it.
	EnableTagger bool
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)

	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("embedding.source", "none")
	viper.SetDefault("embedding.ollama.server_url", "http://localhost:11434")
	viper.SetDefault("embedding.ollama.model", "nomic-embed-text")
	viper.SetDefault("embedding.openai.model", "text-embedding-ada-002")
	viper.SetDefault("embedding.cache_ttl", 24*60*60)

	viper.SetDefault("generator.min_questions", 7)
	viper.SetDefault("generator.max_questions", 20)
	viper.SetDefault("generator.mc_ratio", 0.6)
	viper.SetDefault("generator.false_ratio", 0.34)
	viper.SetDefault("generator.quiz_cache_ttl", 60*60)

	viper.SetDefault("nlp.enable_tagger", true)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars cover
		// every setting. Any other read failure is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Embedding: EmbeddingConfig{
			Source: viper.GetString("embedding.source"),
			Ollama: OllamaConfig{
				ServerURL: viper.GetString("embedding.ollama.server_url"),
				Model:     viper.GetString("embedding.ollama.model"),
			},
			OpenAI: OpenAIConfig{
				APIKey: viper.GetString("embedding.openai.api_key"),
				Model:  viper.GetString("embedding.openai.model"),
			},
			CacheTTL: viper.GetDuration("embedding.cache_ttl") * time.Second,
		},
		Generator: GeneratorConfig{
			MinQuestions:        viper.GetInt("generator.min_questions"),
			MaxQuestions:        viper.GetInt("generator.max_questions"),
			MultipleChoiceRatio: viper.GetFloat64("generator.mc_ratio"),
			FalseStatementRatio: viper.GetFloat64("generator.false_ratio"),
			QuizCacheTTL:        viper.GetDuration("generator.quiz_cache_ttl") * time.Second,
		},
		NLP: NLPConfig{
			EnableTagger: viper.GetBool("nlp.enable_tagger"),
		},
	}

	return config, nil
}
