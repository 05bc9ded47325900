package cmd

import (
	"fmt"
	"os"

	"github.com/opsgrid/dbfleet/pkg/passphrase"
	"github.com/spf13/cobra"
)

var (
	ppWords     int
	ppCount     int
	ppSeparator string
	ppWordlist  string
)

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Generate diceware passphrases from an EFF wordlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		words, err := passphrase.LoadWordlist(ppWordlist)
		if err != nil {
			return err
		}
		phrases, err := passphrase.GenerateN(words, ppWords, ppCount, ppSeparator)
		if err != nil {
			return err
		}
		for _, phrase := range phrases {
			fmt.Fprintln(os.Stdout, phrase)
		}
		return nil
	},
}

func init() {
	passphraseCmd.Flags().IntVar(&ppWords, "words", 4, "Words per passphrase")
	passphraseCmd.Flags().IntVarP(&ppCount, "count", "c", 5, "Number of passphrases")
	passphraseCmd.Flags().StringVarP(&ppSeparator, "separator", "s", " ", "Separator between words")
	passphraseCmd.Flags().StringVarP(&ppWordlist, "wordlist", "w", "eff_large_wordlist.txt", "Path to the wordlist file")

	rootCmd.AddCommand(passphraseCmd)
}
