package template

const StyleCSS = `
body > div {
  margin: 0 auto;
  padding: 20px;
  box-sizing: border-box;
  background-color: #fff;
  line-height: 1.6;
  text-align: justify;
  color: #333333;
}

h1, h2 {
  text-align: center;
  font-size: 1.5em;
  margin: 2em auto;
  font-weight: bold;
  color: #2c3e50;
}

p {
  text-indent: 2em;
  margin: 0.8em 0;
  font-size: 1.1em;
}

hr {
  border: none;
  border-bottom: 1px solid #e0e0e0;
  margin: 1.5em 20%;
}

img {
  max-width: 80%;
  height: auto;
  display: block;
  margin-left: auto !important;
  margin-right: auto !important;
  margin-top: 1em;
  margin-bottom: 1em;
}

.author, .rating, .updated {
  text-align: center;
  text-indent: 0;
  margin: 0.4em 0;
}

.rating {
  font-size: 1.4em;
  letter-spacing: 0.1em;
}

.chapter-number {
  text-align: center;
  text-indent: 0;
  color: #7f8c8d;
  font-size: 0.9em;
}

nav ol {
  list-style: none;
  padding: 0;
}
`
