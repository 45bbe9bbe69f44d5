package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blockfall/engine"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
)

type frameMsg time.Time
type soundMsg struct{}

// The engine is advanced once per rendered frame with the frame's elapsed
// wall time.
const frameInterval = time.Second / 60

// maxFrameDelta caps the dt handed to the engine after a stall (resize,
// suspended terminal), so a single late frame cannot skip the piece ahead.
const maxFrameDelta = 250 * time.Millisecond

const (
	scorePopupDuration  = 900 * time.Millisecond
	topOutFlashDuration = 240 * time.Millisecond
)

type Model struct {
	screen      Screen
	width       int
	height      int
	menuIndex   int
	themeIndex  int
	configIndex int
	config      Config
	game        *engine.Game
	paused      bool
	sound       *SoundEngine
	music       *MusicPlayer
	lastFrame   time.Time
	lastDelta   int
	popupUntil  time.Time
	flashUntil  time.Time
}

func NewModel() Model {
	config, _ := loadConfig()
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	ctx, sampleRate, err := initAudioContext()
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	sound := NewSoundEngine(ctx, sampleRate, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	return Model{
		screen:     screenMenu,
		config:     config,
		themeIndex: index,
		game:       engine.New(),
		sound:      sound,
		music:      NewMusicPlayer(ctx, sampleRate, volumeFromPercent(config.Volume)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.syncMusicForScreen()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		if m.screen != screenGame {
			return m, nil
		}
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame)
		m.lastFrame = now
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
		m.expireEffects(now)
		if m.paused || m.game.Over() {
			return m, frameCmd()
		}
		result := m.game.Tick(dt)
		if m.game.Over() {
			m.flashUntil = now.Add(topOutFlashDuration)
			DebugLogf("top out: score=%d lines=%d level=%d", m.game.Score(), m.game.Lines(), m.game.Level())
			if m.config.Sound {
				return m, tea.Batch(frameCmd(), playSound(m.sound, SoundGameOver))
			}
			return m, frameCmd()
		}
		if result.Locked {
			m.applyScoreEvent(result, now)
			if m.config.Sound {
				return m, tea.Batch(frameCmd(), playSound(m.sound, soundForLock(result)))
			}
		}
		return m, frameCmd()
	case soundMsg:
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	default:
		return ""
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func playSound(sound *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if sound != nil {
			sound.Play(event)
		}
		return soundMsg{}
	}
}

func soundForLock(result engine.StepResult) SoundEvent {
	switch result.Cleared {
	case 0:
		return SoundLock
	case 1:
		return SoundLine1
	case 2:
		return SoundLine2
	case 3:
		return SoundLine3
	default:
		return SoundLine4
	}
}

func (m *Model) applyScoreEvent(result engine.StepResult, now time.Time) {
	if result.ScoreDelta <= 0 {
		return
	}
	m.lastDelta = result.ScoreDelta
	m.popupUntil = now.Add(scorePopupDuration)
}

func (m *Model) expireEffects(now time.Time) {
	if !m.popupUntil.IsZero() && now.After(m.popupUntil) {
		m.lastDelta = 0
		m.popupUntil = time.Time{}
	}
	if !m.flashUntil.IsZero() && now.After(m.flashUntil) {
		m.flashUntil = time.Time{}
	}
}

func (m *Model) isFlashing() bool {
	return !m.flashUntil.IsZero() && time.Now().Before(m.flashUntil)
}

func (m *Model) startGame() tea.Cmd {
	m.game.Reset()
	m.paused = false
	m.lastDelta = 0
	m.popupUntil = time.Time{}
	m.flashUntil = time.Time{}
	m.lastFrame = time.Now()
	return tea.Batch(m.setScreen(screenGame), frameCmd())
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.screen = screen
	return m.syncMusicForScreen()
}

func (m *Model) syncMusicForScreen() tea.Cmd {
	if m.music == nil {
		return nil
	}
	if m.config.Music && m.screen == screenGame {
		m.music.Start()
		return nil
	}
	m.music.Stop()
	return nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			cmd = m.menuSound(SoundMenuMove)
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			cmd = m.menuSound(SoundMenuMove)
		}
	case "enter":
		cmd = m.menuSound(SoundMenuSelect)
		switch m.menuIndex {
		case 0:
			return tea.Batch(cmd, m.startGame())
		case 1:
			return tea.Batch(cmd, m.setScreen(screenThemes))
		case 2:
			return tea.Batch(cmd, m.setScreen(screenConfig))
		case 3:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return cmd
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	if m.game.Over() {
		switch msg.String() {
		case "r":
			return m.startGame()
		case "q", "esc":
			return m.setScreen(screenMenu)
		}
		return nil
	}
	switch msg.String() {
	case "left", "a", "h":
		if m.game.Move(-1) {
			return m.menuSound(SoundMove)
		}
	case "right", "d", "l":
		if m.game.Move(1) {
			return m.menuSound(SoundMove)
		}
	case "down", "s", "j":
		m.game.SoftDrop()
	case "up", "w", "x":
		if m.game.Rotate() {
			return m.menuSound(SoundRotate)
		}
	case " ":
		if m.game.HardDrop() > 0 {
			return m.menuSound(SoundDrop)
		}
	case "r":
		return m.startGame()
	case "p":
		m.paused = !m.paused
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			return m.menuSound(SoundMenuMove)
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			return m.menuSound(SoundMenuMove)
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		_ = saveConfig(m.config)
		return tea.Batch(m.setScreen(screenMenu), m.menuSound(SoundMenuSelect))
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			return m.menuSound(SoundMenuMove)
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.menuSound(SoundMenuMove)
		}
	case "enter":
		switch m.configIndex {
		case 0:
			m.config.Sound = !m.config.Sound
			if m.sound != nil {
				m.sound.SetEnabled(m.config.Sound)
			}
			_ = saveConfig(m.config)
		case 1:
			m.config.Music = !m.config.Music
			_ = saveConfig(m.config)
			return tea.Batch(m.syncMusicForScreen(), m.menuSound(SoundMenuSelect))
		case 2:
			m.adjustVolume(5)
		case 3:
			m.adjustScale(1)
		}
		return m.menuSound(SoundMenuSelect)
	case "left", "h":
		switch m.configIndex {
		case 2:
			m.adjustVolume(-5)
		case 3:
			m.adjustScale(-1)
		}
	case "right", "l":
		switch m.configIndex {
		case 2:
			m.adjustVolume(5)
		case 3:
			m.adjustScale(1)
		}
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) menuSound(event SoundEvent) tea.Cmd {
	if !m.config.Sound {
		return nil
	}
	return playSound(m.sound, event)
}

func (m *Model) adjustVolume(delta int) {
	volume := clampVolumePercent(m.config.Volume + delta)
	if volume == m.config.Volume {
		return
	}
	m.config.Volume = volume
	if m.sound != nil {
		m.sound.SetVolume(volumeFromPercent(volume))
	}
	if m.music != nil {
		m.music.SetVolume(volumeFromPercent(volume))
	}
	_ = saveConfig(m.config)
}

func (m *Model) adjustScale(delta int) {
	scale := clampScale(m.config.Scale + delta)
	if scale == m.config.Scale {
		return
	}
	m.config.Scale = scale
	_ = saveConfig(m.config)
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Config",
	"Quit",
}

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Game Scale",
}
