package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile or résumé hosting site.
type Platform string

const (
	// PlatformLinkedIn is a public LinkedIn profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformGitHub is a GitHub profile or README résumé
	PlatformGitHub Platform = "github"
	// PlatformUnknown is a personal site or any other page
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the hosting site from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	case host == "github.com" || strings.HasSuffix(host, ".github.io"):
		return PlatformGitHub
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			"main.scaffold-layout__main",
			".core-rail",
			"section.profile",
			"main",
		}
	case PlatformGitHub:
		return []string{
			"article.markdown-body",
			".markdown-body",
			".js-profile-editable-area",
			"main",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".authwall-join-form",
			".contextual-sign-in-modal",
			".people-also-viewed",
			".browsemap",
			"aside",
		)
	case PlatformGitHub:
		return append(common,
			".js-header-wrapper",
			".file-navigation",
			".BorderGrid-cell aside",
		)
	default:
		return common
	}
}
