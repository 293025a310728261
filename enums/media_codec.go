package enums

type MediaCodec string

const (
	MediaCodecAVC    MediaCodec = "avc"
	MediaCodecHEVC   MediaCodec = "hevc"
	MediaCodecVP9    MediaCodec = "vp9"
	MediaCodecVP8    MediaCodec = "vp8"
	MediaCodecAV1    MediaCodec = "av1"
	MediaCodecAAC    MediaCodec = "aac"
	MediaCodecOpus   MediaCodec = "opus"
	MediaCodecVorbis MediaCodec = "vorbis"
	MediaCodecMP3    MediaCodec = "mp3"
	MediaCodecFLAC   MediaCodec = "flac"
)
