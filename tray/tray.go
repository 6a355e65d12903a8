// Package tray is the menu-bar shell: manual triggers, mode switching,
// settings and quit, composed over systray.
package tray

import (
	"log"

	"github.com/getlantern/systray"

	"text-meaning-llm/llm"
)

// Callbacks routes menu actions to the application, one field per item.
type Callbacks struct {
	OnMeaning   func()
	OnTranslate func()
	OnSetMode   func(mode llm.Mode)
	OnSettings  func()
	OnQuit      func()
}

type Tray struct {
	title   string
	tooltip string
	cb      Callbacks
}

func New(title, tooltip string, cb Callbacks) *Tray {
	return &Tray{title: title, tooltip: tooltip, cb: cb}
}

// Run starts the menu-bar loop. On macOS this must run on the main thread;
// it blocks until Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit requests shutdown of the menu-bar loop.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)

	mMeaning := systray.AddMenuItem("選択したテキストの意味を調べる", "選択中のテキストの意味を表示します")
	mTranslate := systray.AddMenuItem("選択したテキストを翻訳する", "選択中のテキストを翻訳します")
	systray.AddSeparator()

	mModeMenu := systray.AddMenuItem("モード切替", "ショートカットの動作モード")
	mModeMeaning := mModeMenu.AddSubMenuItemCheckbox("意味解析モード", "", true)
	mModeTranslate := mModeMenu.AddSubMenuItemCheckbox("翻訳モード", "", false)

	mSettings := systray.AddMenuItem("設定", "")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("終了", "")

	go func() {
		for {
			select {
			case <-mMeaning.ClickedCh:
				mModeMeaning.Check()
				mModeTranslate.Uncheck()
				if t.cb.OnMeaning != nil {
					t.cb.OnMeaning()
				}
			case <-mTranslate.ClickedCh:
				mModeTranslate.Check()
				mModeMeaning.Uncheck()
				if t.cb.OnTranslate != nil {
					t.cb.OnTranslate()
				}
			case <-mModeMeaning.ClickedCh:
				mModeMeaning.Check()
				mModeTranslate.Uncheck()
				if t.cb.OnSetMode != nil {
					t.cb.OnSetMode(llm.ModeMeaning)
				}
			case <-mModeTranslate.ClickedCh:
				mModeTranslate.Check()
				mModeMeaning.Uncheck()
				if t.cb.OnSetMode != nil {
					t.cb.OnSetMode(llm.ModeTranslate)
				}
			case <-mSettings.ClickedCh:
				if t.cb.OnSettings != nil {
					t.cb.OnSettings()
				}
			case <-mQuit.ClickedCh:
				log.Printf("Exit requested from menu")
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	if t.cb.OnQuit != nil {
		t.cb.OnQuit()
	}
}
