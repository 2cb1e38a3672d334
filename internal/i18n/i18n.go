// Package i18n holds the user-facing strings. Japanese is the default; English
// is served when the browser prefers it.
package i18n

import (
	"net/http"
	"strings"

	"github.com/taigen-app/taigen/internal/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	AuthWeakPassword       = "auth.weak_password"
	AuthPasswordTooLong    = "auth.password_too_long"
	AuthInvalidCredentials = "auth.invalid_credentials"
	AuthInvalidEmail       = "auth.invalid_email"
	AuthGeneric            = "auth.generic"
	AuthSignUpConfirm      = "auth.signup_confirm"
	AuthEmailConfirmed     = "auth.email_confirmed"
	AuthConfirmInvalid     = "auth.confirm_invalid"

	GoalRequiredFields = "goal.required_fields"
	GoalDeadlinePast   = "goal.deadline_past"
	GoalBadCategory    = "goal.bad_category"
	GoalCreateFailed   = "goal.create_failed"
	GoalCreated        = "goal.created"
	GoalNotFound       = "goal.not_found"

	ProgressOutOfRange = "progress.out_of_range"
	ProgressFailed     = "progress.failed"
	ProgressSaved      = "progress.saved"

	MilestoneAddFailed    = "milestone.add_failed"
	MilestoneUpdateFailed = "milestone.update_failed"
	MilestoneAdded        = "milestone.added"
	MilestoneTitleMissing = "milestone.title_missing"
	MilestoneNotFound     = "milestone.not_found"

	LoadFailed = "goals.load_failed"
)

var (
	Default   = language.Japanese
	supported = []language.Tag{language.Japanese, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = catalog.NewBuilder(catalog.Fallback(Default))
)

func init() {
	set(AuthWeakPassword, "パスワードは%d文字以上で入力してください", "Password must be at least %d characters")
	set(AuthPasswordTooLong, "パスワードは%dバイト以内で入力してください", "Password must be at most %d bytes")
	set(AuthInvalidCredentials, "メールアドレスまたはパスワードが正しくありません", "Email or password is incorrect")
	set(AuthInvalidEmail, "有効なメールアドレスを入力してください", "Please enter a valid email address")
	set(AuthGeneric, "認証エラーが発生しました", "An authentication error occurred")
	set(AuthSignUpConfirm, "確認メールを送信しました。メールを確認してください。", "We sent you a confirmation email. Please check your inbox.")

	set(AuthEmailConfirmed, "メールアドレスを確認しました", "Your email address is confirmed")
	set(AuthConfirmInvalid, "確認リンクが無効か期限切れです", "The confirmation link is invalid or expired")

	set(GoalRequiredFields, "目標、期限、カテゴリーは必須項目です", "Goal, deadline and category are required")
	set(GoalDeadlinePast, "期限は今日以降の日付を指定してください", "The deadline cannot be in the past")
	set(GoalBadCategory, "カテゴリーを選択してください", "Please choose a category")
	set(GoalCreateFailed, "目標の作成中にエラーが発生しました", "Something went wrong while creating the goal")
	set(GoalCreated, "目標を宣言しました！", "Goal declared!")
	set(GoalNotFound, "目標が見つかりません", "Goal not found")

	set(ProgressOutOfRange, "進捗は0から100の間で入力してください", "Progress must be between 0 and 100")
	set(ProgressFailed, "進捗の更新中にエラーが発生しました", "Something went wrong while updating progress")
	set(ProgressSaved, "進捗を更新しました", "Progress updated")

	set(MilestoneAddFailed, "マイルストーンの追加中にエラーが発生しました", "Something went wrong while adding the milestone")
	set(MilestoneUpdateFailed, "マイルストーンの更新中にエラーが発生しました", "Something went wrong while updating the milestone")
	set(MilestoneAdded, "マイルストーンを追加しました", "Milestone added")
	set(MilestoneTitleMissing, "マイルストーン名を入力してください", "Please enter a milestone title")
	set(MilestoneNotFound, "マイルストーンが見つかりません", "Milestone not found")

	set(LoadFailed, "目標の読み込みに失敗しました", "Could not load your goals")
}

func set(key, ja, en string) {
	_ = cat.SetString(language.Japanese, key, ja)
	_ = cat.SetString(language.English, key, en)
}

// T returns the message for key in the default language.
func T(key string) string {
	return Printer(Default).Sprintf(key)
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// FromRequest picks the supported language closest to Accept-Language.
// Requests without a preference get Japanese.
func FromRequest(r *http.Request) language.Tag {
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// AuthKey maps an auth failure to its message key by the markers the auth
// gateway puts in error text.
func AuthKey(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "password_too_long"):
		return AuthPasswordTooLong
	case strings.Contains(msg, "weak_password"):
		return AuthWeakPassword
	case strings.Contains(msg, "Invalid login credentials"):
		return AuthInvalidCredentials
	case strings.Contains(msg, "email"):
		return AuthInvalidEmail
	default:
		return AuthGeneric
	}
}

// AuthText renders an auth failure with p. minLength fills the weak password
// message.
func AuthText(p *message.Printer, err error, minLength int) string {
	key := AuthKey(err)
	switch key {
	case "":
		return ""
	case AuthWeakPassword:
		return p.Sprintf(key, minLength)
	case AuthPasswordTooLong:
		return p.Sprintf(key, validation.MaxPasswordBytes)
	default:
		return p.Sprintf(key)
	}
}

// AuthMessage is AuthText in the default language.
func AuthMessage(err error, minLength int) string {
	return AuthText(Printer(Default), err, minLength)
}
