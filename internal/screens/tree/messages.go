package tree

// ProgressChangedMsg is emitted after an unlock or reset changes the
// session's progress record. The app shell uses it to refresh the
// header counters.
type ProgressChangedMsg struct {
	Unlocked int
	Total    int
}
