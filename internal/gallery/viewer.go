// Package gallery holds the state behind the image/video viewer shown on
// listing, development and project detail pages.
package gallery

type Tab string

const (
	TabPhotos Tab = "fotos"
	TabVideos Tab = "videos"
)

// Viewer tracks the selected thumbnail, the lightbox and the active tab for
// one image list and an optional video. The zero value is not usable; build
// one with New.
type Viewer struct {
	images      []string
	video       string
	placeholder string

	selected   int
	modalOpen  bool
	modalIndex int
	tab        Tab
}

// State is a snapshot of a Viewer, ready to be serialized.
type State struct {
	Images        []string `json:"imagenes"`
	Current       string   `json:"actual"`
	SelectedIndex int      `json:"indice_seleccionado"`
	ModalOpen     bool     `json:"modal_abierto"`
	ModalIndex    int      `json:"indice_modal"`
	Tab           Tab      `json:"tab"`
	HasVideo      bool     `json:"tiene_video"`
	VideoURL      string   `json:"video_url,omitempty"`
}

func New(images []string, videoURL, placeholder string) *Viewer {
	kept := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			kept = append(kept, img)
		}
	}
	return &Viewer{
		images:      kept,
		video:       videoURL,
		placeholder: placeholder,
		tab:         TabPhotos,
	}
}

func (v *Viewer) Len() int { return len(v.images) }

func (v *Viewer) HasVideo() bool { return v.video != "" }

// Current returns the selected image, or the placeholder when the list is
// empty.
func (v *Viewer) Current() string {
	if len(v.images) == 0 {
		return v.placeholder
	}
	return v.images[v.selected]
}

// Select changes the highlighted thumbnail. Out of range indexes are
// ignored.
func (v *Viewer) Select(i int) bool {
	if i < 0 || i >= len(v.images) {
		return false
	}
	v.selected = i
	return true
}

// Open shows image i in the lightbox.
func (v *Viewer) Open(i int) bool {
	if i < 0 || i >= len(v.images) {
		return false
	}
	v.modalOpen = true
	v.modalIndex = i
	return true
}

func (v *Viewer) Close() {
	v.modalOpen = false
}

// Next advances the lightbox when it is open and the thumbnail otherwise,
// wrapping at the end.
func (v *Viewer) Next() {
	v.step(1)
}

// Prev is the reverse of Next.
func (v *Viewer) Prev() {
	v.step(-1)
}

func (v *Viewer) step(delta int) {
	n := len(v.images)
	if n == 0 {
		return
	}
	if v.modalOpen {
		v.modalIndex = (v.modalIndex + delta + n) % n
		return
	}
	v.selected = (v.selected + delta + n) % n
}

// SetTab switches between photos and videos. The videos tab only exists
// when a video was given.
func (v *Viewer) SetTab(t Tab) bool {
	switch t {
	case TabPhotos:
	case TabVideos:
		if !v.HasVideo() {
			return false
		}
	default:
		return false
	}
	v.tab = t
	return true
}

func (v *Viewer) State() State {
	images := make([]string, len(v.images))
	copy(images, v.images)
	return State{
		Images:        images,
		Current:       v.Current(),
		SelectedIndex: v.selected,
		ModalOpen:     v.modalOpen,
		ModalIndex:    v.modalIndex,
		Tab:           v.tab,
		HasVideo:      v.HasVideo(),
		VideoURL:      v.video,
	}
}
