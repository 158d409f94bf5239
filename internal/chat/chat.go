// Package chat guarda transcrições efêmeras do assistente do cotador.
// Não há contrato de persistência: as conversas vivem em listas Redis com TTL.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Papéis de uma mensagem na conversa.
const (
	RoleUsuario = "user"
	RoleModelo  = "model"
)

var (
	// ErrMensagemInvalida indica papel desconhecido ou texto vazio.
	ErrMensagemInvalida = errors.New("mensagem inválida")
)

// Mensagem é um turno da conversa.
type Mensagem struct {
	Role  string `json:"role"`
	Texto string `json:"text"`
}

type redisCommander interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Service anexa e lê transcrições por conversa.
type Service struct {
	redis redisCommander
	ttl   time.Duration
}

// NewService cria o serviço com o TTL configurado para as transcrições.
func NewService(redisClient redisCommander, ttl time.Duration) *Service {
	return &Service{redis: redisClient, ttl: ttl}
}

// Anexar acrescenta um turno à conversa e renova o TTL da transcrição.
func (s *Service) Anexar(ctx context.Context, conversaID string, msg Mensagem) error {
	if msg.Role != RoleUsuario && msg.Role != RoleModelo {
		return ErrMensagemInvalida
	}
	if strings.TrimSpace(msg.Texto) == "" {
		return ErrMensagemInvalida
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := chaveConversa(conversaID)
	if err := s.redis.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return s.redis.Expire(ctx, key, s.ttl).Err()
}

// Listar devolve a transcrição completa na ordem de chegada.
func (s *Service) Listar(ctx context.Context, conversaID string) ([]Mensagem, error) {
	itens, err := s.redis.LRange(ctx, chaveConversa(conversaID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	mensagens := make([]Mensagem, 0, len(itens))
	for _, item := range itens {
		var msg Mensagem
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		mensagens = append(mensagens, msg)
	}
	return mensagens, nil
}

func chaveConversa(conversaID string) string {
	return fmt.Sprintf("conversa:%s", conversaID)
}
