package botui

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// MessageKind classifies an incoming Telegram message by the media it
// carries. Only video notes and text are supported inputs.
type MessageKind int

const (
	KindUnknown MessageKind = iota
	KindVideoNote
	KindText
	KindPhoto
	KindVideo
	KindVoice
	KindAudio
	KindDocument
)

func (k MessageKind) String() string {
	switch k {
	case KindVideoNote:
		return "videonote"
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	case KindVoice:
		return "voice"
	case KindAudio:
		return "audio"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Description renders the media kind the way the unsupported-input page
// phrases it.
func (k MessageKind) Description() string {
	switch k {
	case KindPhoto:
		return "a photo"
	case KindVideo:
		return "a video"
	case KindVoice:
		return "a voice recording"
	case KindAudio:
		return "an audio file"
	case KindDocument:
		return "a document"
	default:
		return "this media"
	}
}

// ClassifyMessage inspects the message payload fields in priority order.
func ClassifyMessage(msg *tgbotapi.Message) MessageKind {
	switch {
	case msg == nil:
		return KindUnknown
	case msg.VideoNote != nil:
		return KindVideoNote
	case msg.Text != "":
		return KindText
	case len(msg.Photo) > 0:
		return KindPhoto
	case msg.Video != nil:
		return KindVideo
	case msg.Voice != nil:
		return KindVoice
	case msg.Audio != nil:
		return KindAudio
	case msg.Document != nil:
		return KindDocument
	default:
		return KindUnknown
	}
}
