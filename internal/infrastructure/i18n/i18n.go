package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// catalog guarda as mensagens de um idioma e os templates já parseados
// das mensagens que usam interpolação
type catalog struct {
	messages  map[string]string
	templates map[string]*template.Template
}

// Service resolve chaves de mensagem para texto traduzido, com fallback
// para o idioma padrão e interpolação via templates Go ({{.Resource}})
type Service struct {
	mu              sync.RWMutex
	catalogs        map[string]*catalog
	defaultLanguage string
}

// NewService carrega todos os arquivos <lang>.json de localesDir.
// O idioma padrão precisa existir entre os arquivos carregados.
func NewService(localesDir, defaultLang string) (*Service, error) {
	files, err := filepath.Glob(filepath.Join(localesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", localesDir)
	}

	s := &Service{
		catalogs:        make(map[string]*catalog, len(files)),
		defaultLanguage: defaultLang,
	}

	for _, file := range files {
		lang := strings.TrimSuffix(filepath.Base(file), ".json")

		c, err := loadCatalog(file)
		if err != nil {
			return nil, err
		}
		s.catalogs[lang] = c
	}

	if _, ok := s.catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

func loadCatalog(file string) (*catalog, error) {
	data, err := os.ReadFile(file) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
	}

	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
	}

	c := &catalog{
		messages:  messages,
		templates: make(map[string]*template.Template),
	}

	// Mensagens com interpolação são parseadas uma vez, na carga
	for key, message := range messages {
		if !strings.Contains(message, "{{") {
			continue
		}
		tmpl, err := template.New(key).Parse(message)
		if err != nil {
			return nil, fmt.Errorf("invalid template for key %s in %s: %w", key, file, err)
		}
		c.templates[key] = tmpl
	}

	return c, nil
}

// T traduz uma chave para o idioma solicitado. Chave ausente cai para o
// idioma padrão; ausente também lá, a própria chave é retornada, então
// uma tradução faltando nunca quebra a resposta.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[lang]
	if !ok || !c.has(key) {
		c = s.catalogs[s.defaultLanguage]
	}

	message, ok := c.messages[key]
	if !ok {
		return key
	}

	if len(params) == 0 {
		return message
	}

	tmpl, ok := c.templates[key]
	if !ok {
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return message
	}
	return buf.String()
}

func (c *catalog) has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados, em ordem estável
func (s *Service) GetSupportedLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.catalogs))
	for lang := range s.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsLanguageSupported verifica se um idioma foi carregado
func (s *Service) IsLanguageSupported(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.catalogs[lang]
	return ok
}
