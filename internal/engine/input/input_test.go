package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{
			name:   "quit",
			event:  &sdl.QuitEvent{Type: sdl.QUIT},
			want:   Event{Type: EventQuit},
			wantOK: true,
		},
		{
			name:   "resize",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			want:   Event{Type: EventWindowResize, Width: 800, Height: 600},
			wantOK: true,
		},
		{
			name:   "other window event",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED},
			wantOK: false,
		},
		{
			name:   "key down",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			want:   Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
			wantOK: true,
		},
		{
			name:   "key repeat",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_1}},
			wantOK: false,
		},
		{
			name:   "key up",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			want:   Event{Type: EventKeyUp, Key: sdl.SCANCODE_W},
			wantOK: true,
		},
		{
			name:   "mouse motion",
			event:  &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: -3, YRel: 4},
			want:   Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, DeltaX: -3, DeltaY: 4},
			wantOK: true,
		},
		{
			name:   "mouse down",
			event:  &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			want:   Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 5, MouseY: 6},
			wantOK: true,
		},
		{
			name:   "wheel",
			event:  &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -2},
			want:   Event{Type: EventMouseWheel, Wheel: -2},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
