package domain

// Media is the normalized result of a resolution request. It is the only
// shape the HTTP layer returns for successful resolutions, regardless of
// which upstream resolver produced it.
type Media struct {
	// Title is the video title; adapters substitute a platform-neutral
	// placeholder when the upstream leaves it blank.
	Title string `json:"title"`
	// Cover is an optional cover/thumbnail image URL.
	Cover string `json:"cover,omitempty"`
	// DownloadURL is the direct stream URL. A Media without one is never
	// returned; its absence is a terminal failure for the request.
	DownloadURL string `json:"download_url"`
	// Duration is the length in seconds, when the upstream reports one.
	Duration float64 `json:"duration,omitempty"`
	// Author is passed through from the upstream: an author object for the
	// TikTok resolver, an uploader/channel name for the generic one.
	Author any `json:"author,omitempty"`
	// Source names the site-specific extractor that handled the URL.
	// Only the generic resolver fills it in.
	Source string `json:"source,omitempty"`
}
