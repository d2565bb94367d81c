package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/recommend"
	"github.com/jonathan/resume-analyzer/internal/taxonomy"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the keyword categories",
	Long:  "List the built-in keyword categories, sorted by popularity, or search them by name, description, tag, or keyword.",
	RunE:  runCategories,
}

var categoriesSearch string

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesSearch, "search", "s", "", "Filter categories by a search term")

	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	catalog := taxonomy.Default()

	categories := catalog.Categories()
	if categoriesSearch != "" {
		categories = recommend.New(catalog).SearchCategories(categoriesSearch)
	}

	jsonBytes, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role ids usable with 'analyze --role'",
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(_ *cobra.Command, _ []string) error {
	for _, set := range taxonomy.Default().KeywordSets() {
		fmt.Printf("%-24s %s\n", set.ID, set.DisplayName)
	}
	return nil
}
