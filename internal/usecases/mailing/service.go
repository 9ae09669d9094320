package mailing

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/config"
)

type Mailer interface {
	SendAccountCreated(name, email string) error
}

// Service envia e-mails transacionais via SMTP. Quando desabilitado por
// configuração, os envios viram no-ops logados, para que ambientes de
// desenvolvimento não dependam de um servidor de e-mail.
type Service struct {
	cfg config.Mail
}

func NewService(cfg config.Mail) Mailer {
	return &Service{cfg: cfg}
}

// SendAccountCreated envia o e-mail de boas-vindas após a criação de um
// administrador
func (s *Service) SendAccountCreated(name, email string) error {
	if !s.cfg.Enabled {
		logrus.WithField("email", email).Info("Envio de e-mail desabilitado por configuração, ignorando")
		return nil
	}

	subject := "Sua conta de administrador foi criada"
	body := fmt.Sprintf(
		"Olá %s,\r\n\r\nSua conta de administrador do Ad Manager foi criada com sucesso.\r\nVocê já pode acessar o painel e gerenciar anúncios e campanhas.\r\n\r\nSe você não esperava este e-mail, contate o suporte imediatamente.\r\n",
		name,
	)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}

	logrus.WithField("email", email).Info("E-mail de boas-vindas enviado com sucesso")

	return nil
}
