package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteTitleRequired       = runtimeconfig.ErrSiteTitleRequired
	ErrContentRootRequired     = runtimeconfig.ErrContentRootRequired
	ErrServerAddrRequired      = runtimeconfig.ErrServerAddrRequired
	ErrCoverSizeInvalid        = runtimeconfig.ErrCoverSizeInvalid
	ErrQuotesURLRequired       = runtimeconfig.ErrQuotesURLRequired
	ErrQuotesTimeoutInvalid    = runtimeconfig.ErrQuotesTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CoversConfig   = runtimeconfig.CoversConfig
	QuotesConfig   = runtimeconfig.QuotesConfig
	ServerConfig   = runtimeconfig.ServerConfig
	ThemeConfig    = runtimeconfig.ThemeConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
