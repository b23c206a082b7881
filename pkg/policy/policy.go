package policy

import (
	"strings"

	"github.com/imbecility/socialdl/pkg/models"
	"github.com/imbecility/socialdl/pkg/platform"
)

const (
	AudioQuality = "192"

	// NoTranscoderNote is attached when audio is kept in its source container.
	NoTranscoderNote = "ffmpeg not found, downloading best available audio format"

	DegradedFormat = "worst"
)

const (
	youtubeAudioChain = "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio[ext=mp4]/bestaudio/best[abr>0]/best"
	genericAudioChain = "bestaudio/best"
	youtubeVideoChain = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/bestvideo[ext=webm]+bestaudio[ext=webm]/bestvideo+bestaudio/best[ext=mp4]/best[ext=webm]/best"
	genericVideoChain = "best[ext=mp4]/best"
)

type PostKind int

const (
	PostNone PostKind = iota
	PostExtractAudio
	PostRemux
)

// Postprocess is a single post-processing directive handed to the extraction library.
type Postprocess struct {
	Kind    PostKind
	Codec   string // ExtractAudio target codec, or Remux target container
	Quality string
}

// Plan is everything the fetch step needs to know about formats.
type Plan struct {
	Format      string
	Post        Postprocess
	MergeFormat string
	ExpectedExt string
	Note        string

	// Degraded plans drop every platform tweak, headers included.
	Degraded bool
}

type Input struct {
	Platform    platform.Platform
	Kind        models.Kind
	AudioFormat string
	VideoFormat string
	Transcoder  bool
}

// Primary selects the format chain and post-processing for a request.
func Primary(in Input) Plan {
	var p Plan
	if in.Transcoder {
		p.MergeFormat = "mp4"
	}

	if in.Kind == models.KindAudio {
		p.Format = genericAudioChain
		if in.Platform == platform.YouTube {
			p.Format = youtubeAudioChain
		}

		switch {
		case in.Transcoder && strings.EqualFold(in.AudioFormat, "mp3"):
			p.Post = Postprocess{Kind: PostExtractAudio, Codec: "mp3", Quality: AudioQuality}
			p.ExpectedExt = "mp3"
		case in.Transcoder:
			p.Post = Postprocess{Kind: PostExtractAudio, Codec: "m4a", Quality: AudioQuality}
			p.ExpectedExt = "m4a"
		default:
			p.Note = NoTranscoderNote
		}
		return p
	}

	p.Format = genericVideoChain
	if in.Platform == platform.YouTube {
		p.Format = youtubeVideoChain
	}
	if in.Transcoder && (in.VideoFormat == "" || strings.EqualFold(in.VideoFormat, "mp4")) {
		p.Post = Postprocess{Kind: PostRemux, Codec: "mp4"}
		p.ExpectedExt = "mp4"
	}
	return p
}

// Degraded is the last-resort plan used after an unclassified failure.
func Degraded() Plan {
	return Plan{
		Format:   DegradedFormat,
		Degraded: true,
	}
}
