package conversation

// AssociationWindowMillis is how long after a message an artifact may be
// stamped and still belong to it.
const AssociationWindowMillis = 1000

// InWindow reports whether an artifact stamped at artifactTS falls in the
// closed window [messageTS, messageTS+1000ms].
func InWindow(messageTS, artifactTS Timestamp) bool {
	if !messageTS.Valid() || !artifactTS.Valid() {
		return false
	}
	t, a := messageTS.Millis(), artifactTS.Millis()
	return a >= t && a <= t+AssociationWindowMillis
}

func belongs(m Message, a Artifact) bool {
	if a.MessageID != "" {
		return m.ID != "" && m.ID == a.MessageID
	}
	return InWindow(m.Timestamp, a.Timestamp)
}

// Associate returns copies of messages with Artifacts filled in. Artifacts
// carrying a MessageID attach only to that message; the rest attach to every
// message whose window contains them. Artifact order is preserved.
func Associate(messages []Message, artifacts []Artifact) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		m.Artifacts = nil
		for _, a := range artifacts {
			if belongs(m, a) {
				m.Artifacts = append(m.Artifacts, a)
			}
		}
		out[i] = m
	}
	return out
}

// Unassociated returns the artifacts that Associate would attach to no message.
func Unassociated(messages []Message, artifacts []Artifact) []Artifact {
	var out []Artifact
	for _, a := range artifacts {
		matched := false
		for _, m := range messages {
			if belongs(m, a) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, a)
		}
	}
	return out
}
