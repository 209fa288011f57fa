package domain

import (
	"fmt"
	"strings"
)

// Template 通知模板，占位符形如 {{key}}
type Template struct {
	Key     string
	Subject string
	Body    string
}

// Registry 模板注册表
type Registry struct {
	templates map[string]Template
}

// NewRegistry 创建包含内置模板的注册表
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	for _, t := range builtinTemplates {
		r.Register(t)
	}
	return r
}

// Register 注册或覆盖模板
func (r *Registry) Register(t Template) {
	r.templates[t.Key] = t
}

// Render 渲染模板，返回主题与正文
func (r *Registry) Render(key string, variables map[string]string) (subject, body string, err error) {
	t, ok := r.templates[key]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template: %s", key)
	}
	return substitute(t.Subject, variables), substitute(t.Body, variables), nil
}

func substitute(text string, variables map[string]string) string {
	for k, v := range variables {
		text = strings.ReplaceAll(text, "{{"+k+"}}", v)
	}
	return text
}

var builtinTemplates = []Template{
	{
		Key:     "processing",
		Subject: "Your {{kind}} request is being processed",
		Body:    "Your {{kind}} request for {{amount}} {{currency}} has been approved and is now processing. Note: {{note}}",
	},
	{
		Key:     "rejected",
		Subject: "Your {{kind}} request was rejected",
		Body:    "Your {{kind}} request for {{amount}} {{currency}} has been rejected. Note: {{note}}",
	},
	{
		Key:     "registration_name_selected",
		Subject: "A name was selected for your company registration",
		Body:    "The name \"{{selected_name}}\" has been selected for your registration in {{jurisdiction}}. Note: {{note}}",
	},
	{
		Key:     "registration_completed",
		Subject: "Your company registration is complete",
		Body:    "Your company \"{{selected_name}}\" has been registered under number {{registration_number}}. Note: {{note}}",
	},
	{
		Key:     "registration_rejected",
		Subject: "Your company registration was rejected",
		Body:    "Your registration in {{jurisdiction}} has been rejected. Note: {{note}}",
	},
}
