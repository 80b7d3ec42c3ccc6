package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ChatConfig tunes the chat orchestrator. It is reloaded when chat.yml changes.
type ChatConfig struct {
	ConversationTTL    time.Duration `mapstructure:"conversationTTL"`
	HistoryLimit       int           `mapstructure:"historyLimit"`
	DefaultSuggestions []string      `mapstructure:"defaultSuggestions"`
	ReportKeywords     []string      `mapstructure:"reportKeywords"`
	// DemoCustomerID is the customer whose orders the chat reads and cancels.
	DemoCustomerID     string        `mapstructure:"demoCustomerID"`
}

func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		ConversationTTL:    2 * time.Hour,
		HistoryLimit:       10,
		DefaultSuggestions: []string{"Order status", "Product information", "Support request"},
		ReportKeywords: []string{
			"report",
			"inventory",
			"analytics",
			"analysis",
			"statistics",
			"sales data",
			"price analysis",
		},
		DemoCustomerID: "CUST-001",
	}
}

type ChatConfigHolder struct {
	current atomic.Value // holds ChatConfig
}

// NewStaticChatConfigHolder returns a holder that never reloads.
func NewStaticChatConfigHolder(cfg ChatConfig) *ChatConfigHolder {
	holder := &ChatConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewChatConfigHolder() (*ChatConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("chat")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/supportly/config")
	v.AddConfigPath("/etc/supportly")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SUPPORTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultChatConfig()
	v.SetDefault("chat.conversationTTL", defaults.ConversationTTL)
	v.SetDefault("chat.historyLimit", defaults.HistoryLimit)
	v.SetDefault("chat.defaultSuggestions", defaults.DefaultSuggestions)
	v.SetDefault("chat.reportKeywords", defaults.ReportKeywords)
	v.SetDefault("chat.demoCustomerID", defaults.DemoCustomerID)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg ChatConfig
	if err := v.UnmarshalKey("chat", &cfg); err != nil {
		return nil, err
	}
	if err := validateChatConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticChatConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ChatConfig
		if err := v.UnmarshalKey("chat", &updated); err != nil {
			zap.L().Warn("chat config reload failed", zap.Error(err))
			return
		}
		if err := validateChatConfig(updated); err != nil {
			zap.L().Warn("invalid chat config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("chat config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *ChatConfigHolder) Get() ChatConfig {
	if h == nil {
		return DefaultChatConfig()
	}
	return h.current.Load().(ChatConfig)
}

func validateChatConfig(cfg ChatConfig) error {
	if cfg.ConversationTTL <= 0 {
		return errors.New("chat.conversationTTL must be positive")
	}
	if cfg.HistoryLimit <= 0 {
		return errors.New("chat.historyLimit must be positive")
	}
	if len(cfg.DefaultSuggestions) == 0 {
		return errors.New("chat.defaultSuggestions cannot be empty")
	}
	if strings.TrimSpace(cfg.DemoCustomerID) == "" {
		return errors.New("chat.demoCustomerID is required")
	}
	return nil
}
