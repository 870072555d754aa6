package ytdlp

// selectDownloadURL picks the direct stream URL from an extractor entry.
//
// Order of preference:
//  1. requested_formats: the first entry with a video codec and a URL,
//     otherwise the first entry's URL. These are the formats yt-dlp picked
//     for the requested format expression.
//  2. The entry's own top-level url.
//  3. The formats list, scanned from the end (yt-dlp orders worst to best):
//     the last mp4 with a URL, otherwise the last entry's URL.
//
// Returns "" when nothing usable is found.
func selectDownloadURL(entry *info) string {
	if len(entry.RequestedFormats) > 0 {
		for _, f := range entry.RequestedFormats {
			if f.Vcodec != "none" && f.URL != "" {
				return f.URL
			}
		}

		if entry.RequestedFormats[0].URL != "" {
			return entry.RequestedFormats[0].URL
		}
	}

	if entry.URL != "" {
		return entry.URL
	}

	if len(entry.Formats) > 0 {
		for i := len(entry.Formats) - 1; i >= 0; i-- {
			f := entry.Formats[i]
			if f.Ext == "mp4" && f.URL != "" {
				return f.URL
			}
		}

		return entry.Formats[len(entry.Formats)-1].URL
	}

	return ""
}
