package text

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"watty-downloader/model"
	"watty-downloader/utils"

	"github.com/PuerkitoBio/goquery"
)

// PackBookToText writes one plain text file per page of book into a
// directory named after the book, replacing any previous export. It returns
// the directory path.
func PackBookToText(book *model.Book, outputPath string) (string, error) {
	outputPath = filepath.Join(outputPath, utils.CleanDirName(book.Title))
	_, err := os.Stat(outputPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to get output directory: %w", err)
		}
	} else {
		err = os.RemoveAll(outputPath)
		if err != nil {
			return "", fmt.Errorf("failed to remove output directory: %w", err)
		}
	}
	err = os.MkdirAll(outputPath, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, chapter := range book.Chapters {
		chapterPath := filepath.Join(outputPath, fmt.Sprintf("%03d-%s.txt", chapter.Number, utils.CleanDirName(chapter.Title)))
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(chapter.Content))
		if err != nil {
			return "", fmt.Errorf("failed to parse chapter %q: %w", chapter.Title, err)
		}
		doc.Find("img").Remove()
		doc.Find("head").Remove()

		text := strings.TrimSpace(doc.Text())
		err = os.WriteFile(chapterPath, []byte(text+"\n"), 0644)
		if err != nil {
			return "", fmt.Errorf("failed to write chapter file: %w", err)
		}
	}
	return outputPath, nil
}
