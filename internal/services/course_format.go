package services

import types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"

// CourseFormatOf derives the display format from the course media flags.
func CourseFormatOf(video, audio bool) types.CourseFormat {
	switch {
	case video && audio:
		return types.CourseFormatMultimedia
	case video:
		return types.CourseFormatVideo
	case audio:
		return types.CourseFormatAudio
	default:
		return types.CourseFormatText
	}
}

// AnnotateFormats sets CourseFormat on every non-nil row in place.
func AnnotateFormats(items []*types.ItemRow) {
	for _, it := range items {
		if it == nil {
			continue
		}
		it.CourseFormat = CourseFormatOf(it.Video, it.Audio)
	}
}
