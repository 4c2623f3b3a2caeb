package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/blogloom/internal/site"
	"github.com/KaramelBytes/blogloom/internal/utils"
	"github.com/spf13/cobra"
)

var initTitle string

const welcomePost = `---
title: %s
date: %s
readTime: 1
tags: welcome, meta
excerpt: The first post of a fresh blog.
---
# Welcome

This blog was created with **blogloom**.

Write posts as *markdown* files with a header block, then list them in
` + "`index.json`" + `.

- headings, emphasis and code
- [links](https://example.com) and images
`

const aboutPage = `# About

Tell readers who you are.
`

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a new blog with an index and a first post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postsDir := filepath.Join(args[0], "posts")
		// Refuse to overwrite an existing blog.
		if _, err := os.Stat(filepath.Join(postsDir, utils.IndexFileName)); err == nil {
			return fmt.Errorf("blog already exists at %s", postsDir)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat index: %w", err)
		}
		if err := utils.EnsureDir(postsDir); err != nil {
			return err
		}
		title := initTitle
		if title == "" {
			title = "Hello, world"
		}
		post := fmt.Sprintf(welcomePost, title, time.Now().Format("2006-01-02"))
		if err := utils.SafeWriteFile(filepath.Join(postsDir, "welcome.md"), []byte(post)); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(filepath.Join(postsDir, "about.md"), []byte(aboutPage)); err != nil {
			return err
		}
		idx, err := utils.PrettyJSON(site.Index{Posts: []site.Entry{{File: "welcome.md"}}})
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(filepath.Join(postsDir, utils.IndexFileName), idx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Blog initialized: %s\n", postsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initTitle, "title", "t", "", "title of the first post")
}
