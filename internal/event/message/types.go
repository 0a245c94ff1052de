package message

import (
	"encoding/json"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"github.com/ecodeclub/mq-api"
)

const (
	SendTopic     = "message_send_topic"
	RecordTopic   = "message_record_topic"
	CallbackTopic = "message_callback_topic"
)

const (
	TagVerificationSend = "SMS_MESSAGE_VERIFICATION_SEND_TAG"
	TagOtherSend        = "OTHER_MESSAGE_SEND_TAG"
	TagSave             = "COMMON_MESSAGE_SAVE_TAG"
)

// SendTag 验证码短信单独一个 tag，避免被其它消息堵住
func SendTag(t domain.MessageType) string {
	if t.IsVerification() {
		return TagVerificationSend
	}
	return TagOtherSend
}

func Decode[T any](msg *mq.Message) (domain.MessageWrapper[T], error) {
	var w domain.MessageWrapper[T]
	err := json.Unmarshal(msg.Value, &w)
	return w, err
}
