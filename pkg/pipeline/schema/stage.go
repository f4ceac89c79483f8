package schema

import (
	"strings"
)

// Stage says when a plugin runs relative to publishing a record.
type Stage string

const (
	StagePre  Stage = "pre"
	StagePost Stage = "post"
)

// AnyTarget matches every record kind.
const AnyTarget = "*"

func NormalizeStage(raw string) Stage {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "pre", "before":
		return StagePre
	default:
		return StagePost
	}
}

// NormalizeTarget lower-cases a record kind; an empty kind means any.
func NormalizeTarget(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return AnyTarget
	}
	return s
}

// TargetMatches reports whether a plugin declared for target applies to kind.
func TargetMatches(target, kind string) bool {
	target = NormalizeTarget(target)
	kind = NormalizeTarget(kind)
	return target == AnyTarget || kind == AnyTarget || target == kind
}
