package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

// gin参数校验器的翻译初始化，校验失败的提示按语言返回

var (
	once  sync.Once
	Trans ut.Translator
)

// LazyInitGinValidator 替换gin默认validator的错误翻译，language支持zh/en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		zhT := zh.New()
		enT := en.New()
		uni := ut.New(enT, zhT, enT)

		var found bool
		Trans, found = uni.GetTranslator(language)
		if !found {
			Trans, _ = uni.GetTranslator("en")
		}

		switch language {
		case "zh":
			_ = zhTranslations.RegisterDefaultTranslations(v, Trans)
		default:
			_ = enTranslations.RegisterDefaultTranslations(v, Trans)
		}
	})
}

// TranslateErr 把校验错误翻译成客户端可读的提示
func TranslateErr(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || Trans == nil {
		return err.Error()
	}
	for _, e := range errs {
		return e.Translate(Trans)
	}
	return err.Error()
}
