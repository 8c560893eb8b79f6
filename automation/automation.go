package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// DownloadRastreabilidade entra no portal de auditoria e baixa o extrato de
// rastreabilidade do dia. Devolve o caminho do CSV salvo, ou "NO_DATA"
// quando o portal não tem extrato para exportar.
func DownloadRastreabilidade(portalURL, usuario, senha, saveDir string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("falha ao criar a pasta de download: %v", err)
		}
	}

	// Leakless(false) evita bloqueio por antivírus nas máquinas da balança.
	u := launcher.New().
		Headless(false).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	fmt.Println("Acessando o portal de rastreabilidade...")
	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	fmt.Println("Preenchendo credenciais...")
	if err := rod.Try(func() {
		page.MustElement("[name='usuario'], [name='login'], [name='username']").MustInput(usuario)
	}); err != nil {
		return "", fmt.Errorf("campo de usuário não encontrado: %v", err)
	}
	if err := rod.Try(func() {
		page.MustElement("[name='senha'], [name='password'], [type='password']").MustInput(senha)
	}); err != nil {
		return "", fmt.Errorf("campo de senha não encontrado: %v", err)
	}

	fmt.Println("Clicando em entrar...")
	if loginBtn, err := page.ElementR("input, button, a", "Entrar|Acessar|Login"); err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}
	page.MustWaitStable()

	fmt.Println("Abrindo o menu de rastreabilidade...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "Rastreabilidade").MustClick()
	}); err != nil {
		return "", fmt.Errorf("menu de rastreabilidade não encontrado (login pode ter falhado): %v", err)
	}
	page.MustWaitStable()

	wait := browser.MustWaitDownload()
	go page.MustHandleDialog()

	fmt.Println("Clicando em exportar...")
	clicked := false
	selectors := []string{
		"input[value*='Exportar']",
		"input[type='button']",
		"button",
		"a",
	}
	for _, sel := range selectors {
		if el, err := page.ElementR(sel, "Exportar|CSV"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}
	if !clicked {
		return "", fmt.Errorf("botão de exportação não encontrado no portal")
	}

	fmt.Println("Aguardando o download...")
	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() {
			_ = recover()
		}()
		fileData = wait()
		resultChan <- "downloaded"
	}()

	// O portal troca a mensagem da tela quando não há extrato do dia.
	go func() {
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)
			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()
				if strings.Contains(text, "Nenhum registro") || strings.Contains(text, "sem dados") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return "NO_DATA", nil
		}
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("tempo esgotado esperando o download do extrato")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("o extrato baixado veio vazio")
	}

	fileName := fmt.Sprintf("rastreabilidade_%s.csv", time.Now().Format("20060102150405"))
	destPath := filepath.Join(saveDir, fileName)
	if err := os.WriteFile(destPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("falha ao gravar o extrato: %v", err)
	}

	fmt.Printf("Download concluído: %s\n", destPath)
	return destPath, nil
}
