package service

import (
	"fmt"

	"github.com/taigen-app/taigen/internal/model"
)

func signUpConfirmationTemplate(confirmURL, appName string) (string, string) {
	subject := fmt.Sprintf("【%s】メールアドレスの確認", appName)
	body := fmt.Sprintf(`%s へのご登録ありがとうございます。

以下のリンクからメールアドレスを確認してください:
%s

このリンクの有効期限は24時間です。

お心当たりがない場合は、このメールを破棄してください。

%s チーム`, appName, confirmURL, appName)

	return subject, body
}

func deadlineReminderTemplate(goal *model.Goal, daysLeft int, goalsURL, appName string) (string, string) {
	when := fmt.Sprintf("あと%d日", daysLeft)
	if daysLeft <= 0 {
		when = "今日"
	}

	subject := fmt.Sprintf("【%s】目標「%s」の期限は%sです", appName, goal.Title, when)
	body := fmt.Sprintf(`宣言した目標の期限が近づいています。

目標: %s
カテゴリー: %s
達成期限: %s
現在の進捗: %d%%

進捗を更新しましょう:
%s

%s チーム`, goal.Title, goal.Category, goal.Deadline.Format("2006-01-02"), goal.Progress, goalsURL, appName)

	return subject, body
}
