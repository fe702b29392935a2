package slack

// TextObject Block Kit 文本对象
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Block Block Kit 块，当前只用到 header / divider / section 三种
type Block struct {
	Type string      `json:"type"`
	Text *TextObject `json:"text,omitempty"`
}

func HeaderBlock(text string) Block {
	return Block{
		Type: "header",
		Text: &TextObject{Type: "plain_text", Text: text},
	}
}

func DividerBlock() Block {
	return Block{Type: "divider"}
}

func SectionBlock(markdown string) Block {
	return Block{
		Type: "section",
		Text: &TextObject{Type: "mrkdwn", Text: markdown},
	}
}
