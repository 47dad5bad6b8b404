package audio

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"golang.org/x/exp/slog"
)

type Downloader struct {
	AudioDir string
}

// voices are rotated randomly so cards don't all sound the same.
var voices = []*texttospeechpb.VoiceSelectionParams{
	{
		LanguageCode: "de-DE",
		Name:         "de-DE-Wavenet-B",
		SsmlGender:   texttospeechpb.SsmlVoiceGender_MALE,
	},
	{
		LanguageCode: "de-DE",
		Name:         "de-DE-Wavenet-A",
		SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
	},
	{
		LanguageCode: "de-DE",
		Name:         "de-DE-Wavenet-D",
		SsmlGender:   texttospeechpb.SsmlVoiceGender_MALE,
	},
	{
		LanguageCode: "de-DE",
		Name:         "de-DE-Wavenet-F",
		SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
	},
}

// Fetch downloads German audio from the google text-to-speech api if it
// doesn't exist in the audio dir yet. The filename is returned with the mp3
// extension appended.
func (p *Downloader) Fetch(ctx context.Context, query, filename string) (string, error) {
	filename = filename + ".mp3"
	if err := os.MkdirAll(p.AudioDir, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(p.AudioDir, filename)

	if _, err := os.Stat(path); err == nil {
		slog.Debug("audio file exists", "path", path)
		return filename, nil
	}

	time.Sleep(100 * time.Millisecond)
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: query},
		},
		Voice: voices[rand.Intn(len(voices))],
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  1,
		},
	}

	resp, err := client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return "", err
	}

	// the resp's AudioContent is binary
	if err := os.WriteFile(path, resp.AudioContent, os.ModePerm); err != nil {
		return "", err
	}
	slog.Debug("audio content written to file", "path", path)
	return filename, nil
}
