package services

import "context"

type contextKey string

const (
	stageKey     contextKey = "stage"
	lineIndexKey contextKey = "line_index"
	speakerKey   contextKey = "speaker"
)

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithLine annotates context with the dialogue line being processed.
func WithLine(ctx context.Context, index int, speaker string) context.Context {
	ctx = context.WithValue(ctx, lineIndexKey, index)
	if speaker != "" {
		ctx = context.WithValue(ctx, speakerKey, speaker)
	}
	return ctx
}

// LineIndexFromContext extracts the dialogue line index if present.
func LineIndexFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(lineIndexKey).(int); ok {
		return v, true
	}
	return 0, false
}

// SpeakerFromContext extracts the speaker identifier if present.
func SpeakerFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(speakerKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
