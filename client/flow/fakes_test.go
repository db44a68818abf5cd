package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/sceneflow/client/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

// recorder is the ordered log of engine and scene calls shared by the fakes.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// index returns the position of the first event equal to e, or -1.
func (r *recorder) index(e string) int {
	for i, got := range r.all() {
		if got == e {
			return i
		}
	}
	return -1
}

type fakeEngine struct {
	rec      *recorder
	mu       sync.Mutex
	loading  bool
	disposed int
	width    int
	height   int
}

func (e *fakeEngine) DisplayLoadingUI() {
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()
	e.rec.add("loading:show")
}

func (e *fakeEngine) HideLoadingUI() {
	e.mu.Lock()
	e.loading = false
	e.mu.Unlock()
	e.rec.add("loading:hide")
}

func (e *fakeEngine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
}

func (e *fakeEngine) Dispose() error {
	e.mu.Lock()
	e.disposed++
	e.mu.Unlock()
	e.rec.add("engine:dispose")
	return nil
}

func (e *fakeEngine) isLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

type fakeScene struct {
	id    string
	kind  string
	label string
	rec   *recorder

	// ready is closed by the test, or at construction, to signal readiness.
	ready    chan struct{}
	readyErr error

	mu       sync.Mutex
	attached bool
	disposed bool
	setup    bool
	press    func()
}

func (s *fakeScene) ID() string {
	return s.id
}

func (s *fakeScene) Update() error {
	return nil
}

func (s *fakeScene) Draw(screen *ebiten.Image) {}

func (s *fakeScene) AttachInput() {
	s.mu.Lock()
	s.attached = true
	s.mu.Unlock()
	s.rec.add("attach:%s", s.id)
}

func (s *fakeScene) DetachInput() {
	s.mu.Lock()
	s.attached = false
	s.mu.Unlock()
	s.rec.add("detach:%s", s.id)
}

func (s *fakeScene) InputAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

func (s *fakeScene) WhenReady(ctx context.Context) error {
	select {
	case <-s.ready:
		s.rec.add("ready:%s", s.id)
		return s.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeScene) Dispose() error {
	s.mu.Lock()
	s.disposed = true
	s.attached = false
	s.mu.Unlock()
	s.rec.add("dispose:%s", s.id)
	return nil
}

func (s *fakeScene) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// pressButton simulates the GUI event of the scene's only widget. Presses
// are ignored while input is detached, as the real container does.
func (s *fakeScene) pressButton() {
	s.mu.Lock()
	press, attached := s.press, s.attached
	s.mu.Unlock()
	if attached && press != nil {
		press()
	}
}

// forcePress fires the handler regardless of the input state.
func (s *fakeScene) forcePress() {
	s.mu.Lock()
	press := s.press
	s.mu.Unlock()
	press()
}

var errBuild = errors.New("engine failure")

type fakeBuilder struct {
	rec *recorder

	mu     sync.Mutex
	counts map[string]int
	built  []*fakeScene
	// fail makes the builder of the given kind return errBuild.
	fail map[string]error
	// holdReady keeps scenes of the given kind from becoming ready until released.
	holdReady map[string]bool
	// readyErr makes scenes of the given kind fail their ready-wait.
	readyErr map[string]error
}

func newFakeBuilder(rec *recorder) *fakeBuilder {
	return &fakeBuilder{
		rec:       rec,
		counts:    map[string]int{},
		fail:      map[string]error{},
		holdReady: map[string]bool{},
		readyErr:  map[string]error{},
	}
}

func (b *fakeBuilder) newScene(kind, label string, press func()) (*fakeScene, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.fail[kind]; err != nil {
		b.rec.add("build-failed:%s", kind)
		return nil, err
	}
	b.counts[kind]++
	s := &fakeScene{
		id:       fmt.Sprintf("%s-%d", kind, b.counts[kind]),
		kind:     kind,
		label:    label,
		rec:      b.rec,
		ready:    make(chan struct{}),
		readyErr: b.readyErr[kind],
		press:    press,
	}
	if !b.holdReady[kind] {
		close(s.ready)
	}
	b.built = append(b.built, s)
	b.rec.add("build:%s", s.id)
	return s, nil
}

func (b *fakeBuilder) NewPlaceholderScene() (scenes.Scene, error) {
	return b.newScene("placeholder", "", nil)
}

func (b *fakeBuilder) NewStartScene(onPlay func()) (scenes.Scene, error) {
	return b.newScene("start", "PLAY", onPlay)
}

func (b *fakeBuilder) NewCutScene(onNext func()) (scenes.Scene, error) {
	return b.newScene("cutscene", "NEXT", onNext)
}

func (b *fakeBuilder) NewGameScene() (scenes.Scene, error) {
	return b.newScene("game", "", nil)
}

func (b *fakeBuilder) SetupGameScene(scene scenes.Scene, onLose func()) error {
	b.mu.Lock()
	err := b.fail["setup"]
	b.mu.Unlock()
	if err != nil {
		b.rec.add("setup-failed:%s", scene.ID())
		return err
	}
	s := scene.(*fakeScene)
	s.mu.Lock()
	s.setup = true
	s.label = "LOSE"
	s.press = onLose
	s.mu.Unlock()
	b.rec.add("setup:%s", s.id)
	return nil
}

func (b *fakeBuilder) NewLoseScene(onMainMenu func()) (scenes.Scene, error) {
	return b.newScene("lose", "MAIN MENU", onMainMenu)
}

func (b *fakeBuilder) count(kind string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[kind]
}

func (b *fakeBuilder) setFail(kind string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.fail, kind)
		return
	}
	b.fail[kind] = err
}

func (b *fakeBuilder) setHoldReady(kind string, hold bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holdReady[kind] = hold
}

func (b *fakeBuilder) last(kind string) *fakeScene {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.built) - 1; i >= 0; i-- {
		if b.built[i].kind == kind {
			return b.built[i]
		}
	}
	return nil
}

func (b *fakeBuilder) byID(id string) *fakeScene {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.built {
		if s.id == id {
			return s
		}
	}
	return nil
}
